package dynamo

// DynamoDB attribute names used by the users table.
const (
	fieldUserID    = "user_id"
	fieldOwnerID   = "owner_id"
	fieldUpdatedAt = "updated_at"
)

// Uniqueness markers share the users table. Their partition key is the
// prefix plus the claimed value and owner_id points at the user item.
const (
	markerEmail    = "email#"
	markerUsername = "username#"
)
