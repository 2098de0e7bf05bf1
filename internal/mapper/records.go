package mapper

// Source records mirror the shape of the metadata repository's query results
// after the transport nesting has been flattened, and of the authored static
// model after code resolution. Optional fields are empty strings or nil
// slices; the mapper fails closed on anything missing.

// PlatformRecord is one platform fact sheet with its child applications in
// source order.
type PlatformRecord struct {
	ID          string
	Name        string
	DisplayName string
	Description string
	ShortCode   string

	Applications []ApplicationRecord
}

// ApplicationRecord is one application fact sheet with its owning teams in
// source order.
type ApplicationRecord struct {
	ID          string
	Name        string
	DisplayName string
	Description string
	ShortCode   string
	Technology  string

	Teams []TeamRecord
}

// TeamRecord is one user-group fact sheet.
type TeamRecord struct {
	ID          string
	Name        string
	DisplayName string
	Description string
	ShortCode   string
}

// IntegrationRecord is one interface fact sheet: provider and consumer
// application ids, in source order.
type IntegrationRecord struct {
	ID          string
	Name        string
	DisplayName string
	Description string
	ShortCode   string

	ProviderIDs []string
	ConsumerIDs []string
}
