package models

// Common category names used by the categorizer and reports.
const (
	CategoryUncategorized = "Uncategorized"
	CategoryGroceries     = "Groceries"
	CategoryRestaurants   = "Restaurants"
	CategoryShopping      = "Shopping"
	CategoryTransport     = "Transport"
	CategoryHousing       = "Housing"
	CategoryInsurance     = "Insurance"
	CategorySalary        = "Salary"
	CategoryTransfers     = "Transfers"
	CategoryWithdrawals   = "Withdrawals"
	CategoryFees          = "Bank Fees"
)

// Category represents a transaction category
type Category struct {
	Name        string
	Description string
}

// CategoryConfig represents a category configuration in the YAML file
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// CategoriesConfig represents the structure of the categories YAML file
type CategoriesConfig struct {
	Categories []CategoryConfig `yaml:"categories"`
}

// CreditorsConfig represents the structure of the creditors YAML file (recipients of payments)
type CreditorsConfig struct {
	Creditors map[string]string `yaml:"creditors"`
}

// DebitorsConfig represents the structure of the debitors YAML file (senders of payments)
type DebitorsConfig struct {
	Debitors map[string]string `yaml:"debitors"`
}
