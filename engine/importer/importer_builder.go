package importer

// ImporterBuilderOption is a functional option for configuring an Importer via NewImporter.
type ImporterBuilderOption func(*importer)

// WithPostProcess replaces the post-processing steps applied after decoding.
//
// Parameters:
//   - flags: the post-process steps to apply
//
// Returns:
//   - ImporterBuilderOption: a function that applies the post-process option to an importer
func WithPostProcess(flags PostProcess) ImporterBuilderOption {
	return func(i *importer) {
		i.postProcess = flags
	}
}

// WithBackend registers a decoder for the given backend type, replacing the default one.
//
// Parameters:
//   - backendType: the format the decoder handles
//   - backend: the decoder implementation
//
// Returns:
//   - ImporterBuilderOption: a function that applies the backend option to an importer
func WithBackend(backendType BackendType, backend ImporterBackend) ImporterBuilderOption {
	return func(i *importer) {
		i.backends[backendType] = backend
	}
}
