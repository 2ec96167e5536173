package constant

const (
	RoleUser  = "user"
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

const (
	RoomStatusAvailable   = "available"
	RoomStatusBooked      = "booked"
	RoomStatusMaintenance = "maintenance"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

const (
	FieldID        = "id"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
)

const (
	// PostgreSQL SQLSTATE codes surfaced by the data API.
	PqErrorCodeNotNullViolation = "23502"
	PqErrorCodeFkViolation      = "23503"
	PqErrorCodeUniqueViolation  = "23505"
	PqErrorCodeCheckViolation   = "23514"
	PqErrorCodeInsufficientPriv = "42501"

	// PostgREST codes.
	StoreErrorCodeNoRows     = "PGRST116"
	StoreErrorCodeJWTExpired = "PGRST301"
)

const (
	DateFormat = "2006-01-02"
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelExternalScopeName   = "external"
	OtelSessionScopeName    = "session"

	OtelQueryAttributeKey = "query"
	OtelTableAttributeKey = "table"
	OtelS3ScopeName       = "s3"
)

const (
	RequestHeaderAuthorization = "Authorization"
	RequestHeaderAPIKey        = "apikey"
	RequestHeaderAccept        = "Accept"
	RequestHeaderContentType   = "Content-Type"
	RequestHeaderContentRange  = "Content-Range"
	RequestHeaderPrefer        = "Prefer"
	RequestHeaderRequestID     = "X-Request-ID"
	RequestHeaderUserAgent     = "User-Agent"
)

const (
	ContentTypeJSON         = "application/json"
	ContentTypeSingleObject = "application/vnd.pgrst.object+json"
	PreferReturnFull        = "return=representation"
	PreferReturnMinimal     = "return=minimal"
	PreferCountExact        = "count=exact"
	BearerPrefix            = "Bearer "
	UserAgent               = "hostel-go/1.0"
)

const (
	PathRest = "/rest/v1/"
	PathAuth = "/auth/v1"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	Asterix = "*"
	Empty   = ""
)
