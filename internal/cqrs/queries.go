package cqrs

// ---------- User queries ----------

// GetUserQuery fetches a single user by ID, subject to ownership check.
type GetUserQuery struct {
	UserID           string
	RequestingUserID string
}

// ---------- Receipt queries ----------

// ListReceiptsQuery fetches all receipts belonging to an owner,
// newest first.
type ListReceiptsQuery struct {
	OwnerID string
}

// GetReceiptQuery fetches a single receipt, subject to ownership check.
type GetReceiptQuery struct {
	ReceiptID string
	OwnerID   string
}

// GetStatsQuery fetches the owner's dashboard counts.
type GetStatsQuery struct {
	OwnerID string
}
