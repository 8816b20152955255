package models

import (
	"github.com/shopspring/decimal"
)

// Entity records are identified by a numeric id; the remaining fields are
// server-defined and passed through without interpretation. Timestamp fields
// stay strings because the server serializes them without a zone offset.

// Company represents a partner company record.
type Company struct {
	ID            int64  `json:"id"`
	Name          string `json:"name" validate:"required"`
	Address       string `json:"address,omitempty"`
	Contact       string `json:"contact,omitempty"`
	Email         string `json:"email,omitempty" validate:"omitempty,email"`
	Type          string `json:"type,omitempty"`
	ContactPerson string `json:"contactPerson,omitempty"`
	Remark        string `json:"remark,omitempty"`
	CreateTime    string `json:"createTime,omitempty"`
}

// Staff represents an employee record.
type Staff struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name" validate:"required"`
	Position   string   `json:"position,omitempty"`
	Tel        string   `json:"tel,omitempty"`
	Email      string   `json:"email,omitempty" validate:"omitempty,email"`
	Department string   `json:"department,omitempty"`
	JoinDate   string   `json:"joinDate,omitempty"`
	Status     string   `json:"status,omitempty"`
	Company    *Company `json:"company,omitempty"`
	CreatedAt  string   `json:"createdAt,omitempty"`
	UpdatedAt  string   `json:"updatedAt,omitempty"`
}

// Goods represents a product catalogue record.
type Goods struct {
	ID            int64   `json:"id"`
	Code          string  `json:"code,omitempty"`
	Name          string  `json:"name" validate:"required"`
	Category      string  `json:"category,omitempty"`
	Specification string  `json:"specification,omitempty"`
	Unit          string  `json:"unit,omitempty"`
	PurchasePrice float64 `json:"purchasePrice,omitempty"`
	SellingPrice  float64 `json:"sellingPrice,omitempty"`
	Stock         int     `json:"stock"`
	Status        int     `json:"status,omitempty"`
	Description   string  `json:"description,omitempty"`
	CreatedAt     string  `json:"createdAt,omitempty"`
	UpdatedAt     string  `json:"updatedAt,omitempty"`
}

// Inventory represents a stock record.
type Inventory struct {
	ID          int64   `json:"id"`
	ProductName string  `json:"productName" validate:"required"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice,omitempty"`
	Warehouse   string  `json:"warehouse,omitempty"`
	Remark      string  `json:"remark,omitempty"`
	CreatedAt   string  `json:"createdAt,omitempty"`
	UpdatedAt   string  `json:"updatedAt,omitempty"`
}

// StockMovement is the payload for stock-in and stock-out operations.
type StockMovement struct {
	ProductName string  `json:"productName" validate:"required"`
	Quantity    int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice   float64 `json:"unitPrice,omitempty"`
	Remark      string  `json:"remark,omitempty"`
}

// OrderTypeCustomer and OrderTypePurchase are the type tags routing the two
// logical order flows onto the single backend order resource.
const (
	OrderTypeCustomer = "customer"
	OrderTypePurchase = "purchase"
)

// Order represents a customer or purchase order.
type Order struct {
	ID            int64        `json:"id"`
	OrderNo       string       `json:"orderNo,omitempty"`
	OrderType     string       `json:"orderType,omitempty"`
	Type          string       `json:"type,omitempty"`
	CustomerName  string       `json:"customerName,omitempty"`
	ContactPerson string       `json:"contactPerson,omitempty"`
	Tel           string       `json:"tel,omitempty"`
	Address       string       `json:"address,omitempty"`
	DeliveryTime  string       `json:"deliveryTime,omitempty"`
	Amount        float64      `json:"amount"`
	Freight       float64      `json:"freight"`
	Status        string       `json:"status,omitempty"`
	Remarks       string       `json:"remarks,omitempty"`
	Goods         []OrderGoods `json:"goods,omitempty"`
	CreatedAt     string       `json:"createdAt,omitempty"`
	UpdatedAt     string       `json:"updatedAt,omitempty"`
}

// OrderGoods represents a single line item inside an order.
type OrderGoods struct {
	ID         int64   `json:"id"`
	Goods      *Goods  `json:"goods,omitempty"`
	Quantity   int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice  float64 `json:"unitPrice,omitempty"`
	TotalPrice float64 `json:"totalPrice,omitempty"`
}

// FinanceRecord represents a finance ledger entry. Money fields use
// arbitrary-precision decimals, mirroring the server's representation.
type FinanceRecord struct {
	ID          int64           `json:"id"`
	RecordDate  string          `json:"recordDate,omitempty"`
	Income      decimal.Decimal `json:"income"`
	Expense     decimal.Decimal `json:"expense"`
	Profit      decimal.Decimal `json:"profit"`
	RecordType  string          `json:"recordType,omitempty"`
	Description string          `json:"description,omitempty"`
	CreatedBy   string          `json:"createdBy,omitempty"`
	CreatedAt   string          `json:"createdAt,omitempty"`
	UpdatedAt   string          `json:"updatedAt,omitempty"`
}

// User represents an administrative console user account.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Tel       string `json:"tel,omitempty"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Avatar    string `json:"avatar,omitempty"`
	Role      string `json:"role,omitempty"`
	Status    *bool  `json:"status,omitempty"`
	LastLogin string `json:"lastLogin,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// UserProfile is the shape returned by the profile-fetch endpoint. Roles must
// be a non-empty array after a successful fetch.
type UserProfile struct {
	Username string   `json:"username"`
	Name     string   `json:"name,omitempty"`
	Avatar   string   `json:"avatar,omitempty"`
	Roles    []string `json:"roles"`
}

// DisplayName prefers the username field over the legacy name field.
func (p *UserProfile) DisplayName() string {
	if p.Username != "" {
		return p.Username
	}
	return p.Name
}

// LoginRequest is the login payload. Password carries the hashed value, never
// the cleartext.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// PasswordUpdate is the payload for the staff password-change operation.
type PasswordUpdate struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}
