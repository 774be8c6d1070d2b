package models

// User is the owner identity that transactions, budgets and balances
// belong to. Account creation and credentials are handled by the identity
// provider, not here.
type User struct {
	DefaultModel
	Name  string `json:"name"`
	Email string `json:"email" gorm:"uniqueIndex"`
}
