package model

// Privilege is a permission code that can be attached to roles and users.
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g. "order:invoice"
	Name string `gorm:"type:varchar(100)" json:"name"`
}

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	// User management (admin API)
	{Code: "user:view", Name: "View User"},
	{Code: "user:create", Name: "Create User"},
	{Code: "user:update", Name: "Update User"},
	{Code: "user:delete", Name: "Delete User"},
	// Catalog
	{Code: "product:view", Name: "View Product"},
	{Code: "product:create", Name: "Create Product"},
	{Code: "product:update", Name: "Update Product"},
	{Code: "product:delete", Name: "Delete Product"},
	{Code: "material:manage", Name: "Manage Raw Materials"},
	{Code: "bom:manage", Name: "Manage Bill of Materials"},
	// Stock
	{Code: "stock:view", Name: "View Stock"},
	{Code: "stock:adjust", Name: "Adjust Stock"},
	// Orders
	{Code: "order:view", Name: "View Order"},
	{Code: "order:manage", Name: "Create/Update Order"},
	{Code: "order:invoice", Name: "Invoice Order"},
	// POS
	{Code: "pos:checkout", Name: "POS Checkout"},
	// Finance & reports
	{Code: "finance:manage", Name: "Manage Finance Entries"},
	{Code: "report:view", Name: "View Reports"},
	// Shipments & customers
	{Code: "shipment:manage", Name: "Manage Shipments"},
	{Code: "customer:manage", Name: "Manage Customers"},
	// Company settings
	{Code: "company:update", Name: "Update Company Settings"},
}
