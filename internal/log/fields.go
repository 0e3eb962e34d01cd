package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldErrorType   = "error_type"
	FieldDuration    = "duration_ms"
	FieldBackend     = "backend"
	FieldPath        = "path"
	FieldRecords     = "records"
	FieldSources     = "sources"
	FieldQuery       = "query"
	FieldSubQueries  = "sub_queries"
	FieldMatched     = "matched"
	FieldResultSetID = "result_set_id"
	FieldBuckets     = "buckets"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentDataset = "dataset"
	ComponentStorage = "storage"
	ComponentSearch  = "search"
	ComponentSession = "session"
	ComponentChart   = "chart"
	ComponentBackend = "backend"
)

// Operations defines standard operation names
const (
	OpLoad     = "load"
	OpSearch   = "search"
	OpStack    = "stack"
	OpShow     = "show"
	OpClear    = "clear"
	OpValidate = "validate"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

// ErrorTypes defines standard error type categories
const (
	ErrorTypeConfiguration = "configuration_error"
	ErrorTypeDataset       = "dataset_error"
	ErrorTypeQuery         = "query_error"
	ErrorTypeRender        = "render_error"
	ErrorTypeInternal      = "internal_error"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithErrorType adds the error category
func (f LogFields) WithErrorType(kind string) LogFields {
	f[FieldErrorType] = kind
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithQuery adds the raw query and how many sub-queries it split into
func (f LogFields) WithQuery(query string, subQueries int) LogFields {
	f[FieldQuery] = query
	f[FieldSubQueries] = subQueries
	return f
}

// WithDuration adds elapsed milliseconds
func (f LogFields) WithDuration(ms int64) LogFields {
	f[FieldDuration] = ms
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
