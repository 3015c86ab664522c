// Package domain defines the persistence models for the vitamin storefront:
// catalog products, customer orders, and admin-managed survey questions.
// These types are mapped with GORM and form the core data layer of the
// application. Pure value types exchanged with the recommendation engine
// live in recommendation.go.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// ProductKey is the stable identity of a product for rule-matching purposes.
// It is a slug (e.g. "vitamin-d3") decoupled from the user-facing display
// name, so renaming a product in the catalog cannot silently detach it from
// its recommendation rules. The catalog layer maps external names to keys at
// the boundary.
type ProductKey string

// Product represents one item of the supplement catalog. The display name,
// description, and category are free text scanned by the keyword matching
// strategy; Key is the stable foreign key into the curated rule table.
//
// Fields:
//   - ID: integer primary key (matches the external catalog contract).
//   - Key: stable slug identity for rule lookup; indexed, may be empty for
//     products that have no curated rules.
//   - Name / Category / Description: display and keyword-matching text.
//   - Price / Dosage / Count / Emoji / Rating / Popular / InStock: display
//     and merchandising attributes, never scored.
type Product struct {
	ID          int            `json:"id"          gorm:"primaryKey;autoIncrement"`
	Key         ProductKey     `json:"key,omitempty" gorm:"type:varchar(64);index"`
	Name        string         `json:"name"        gorm:"type:varchar(255);not null"`
	Category    string         `json:"category"    gorm:"type:varchar(128);index"`
	Description string         `json:"description" gorm:"type:text"`
	Price       float64        `json:"price"`
	Dosage      string         `json:"dosage"      gorm:"type:varchar(64)"`
	Count       string         `json:"count"       gorm:"type:varchar(64)"`
	Emoji       string         `json:"emoji,omitempty" gorm:"type:varchar(16)"`
	Rating      float64        `json:"rating"`
	Popular     bool           `json:"popular"`
	InStock     bool           `json:"inStock"     gorm:"default:true"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-"           gorm:"index"`
}

// TableName returns the database table name for Product.
func (Product) TableName() string { return "products" }

// Order represents a customer checkout. Item lines and the survey snapshot
// that produced the recommendation are stored as JSON text columns, matching
// the external order contract.
//
// Status lifecycle: pending → paid → shipped → delivered (or cancelled).
// PaymentStatus is tracked separately (pending → paid / failed) because the
// payment provider confirms asynchronously.
type Order struct {
	ID            int            `json:"id"             gorm:"primaryKey;autoIncrement"`
	OrderNumber   string         `json:"order_number"   gorm:"type:varchar(64);not null;uniqueIndex"`
	CustomerName  string         `json:"customer_name"  gorm:"type:varchar(255);not null"`
	CustomerEmail string         `json:"customer_email" gorm:"type:varchar(255);not null;index"`
	CustomerPhone string         `json:"customer_phone" gorm:"type:varchar(64)"`
	DeliveryMethod     string    `json:"delivery_method"      gorm:"type:varchar(64)"`
	DeliveryAddress    string    `json:"delivery_address"     gorm:"type:text"`
	DeliveryCity       string    `json:"delivery_city"        gorm:"type:varchar(128)"`
	DeliveryPostalCode string    `json:"delivery_postal_code" gorm:"type:varchar(32)"`
	TotalAmount   float64        `json:"total_amount"`
	Items         string         `json:"items"          gorm:"type:text;not null"` // JSON array of OrderItem
	SurveyData    string         `json:"survey_data,omitempty" gorm:"type:text"`   // JSON SurveyAnswers snapshot
	Status        string         `json:"status"         gorm:"type:varchar(32);not null;default:'pending';index"`
	PaymentStatus string         `json:"payment_status" gorm:"type:varchar(32);not null;default:'pending'"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-"             gorm:"index"`
}

// TableName returns the database table name for Order.
func (Order) TableName() string { return "orders" }

// OrderItem is one line of an order's Items JSON column. It is a snapshot of
// the product at purchase time, not a foreign key, so later catalog edits do
// not rewrite history.
type OrderItem struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// SurveyQuestion is an admin-managed question of the extended intake survey.
// Options holds a JSON object whose shape depends on QuestionType (choice
// lists, numeric min/max/unit, or a text placeholder).
type SurveyQuestion struct {
	ID           int            `json:"id"            gorm:"primaryKey;autoIncrement"`
	Category     string         `json:"category"      gorm:"type:varchar(64);not null;index:idx_survey_order,priority:1"`
	QuestionText string         `json:"question_text" gorm:"type:text;not null"`
	QuestionType string         `json:"question_type" gorm:"type:varchar(32);not null"`
	Options      string         `json:"options,omitempty" gorm:"type:text"`
	SortOrder    int            `json:"sort_order"    gorm:"not null;default:0;index:idx_survey_order,priority:2"`
	Required     bool           `json:"required"      gorm:"default:true"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-"            gorm:"index"`
}

// TableName returns the database table name for SurveyQuestion.
func (SurveyQuestion) TableName() string { return "survey_questions" }

// KVEntry is a single key → JSON blob row backing the local key-value store
// used by the recommendation history (one named key for the history list,
// one for the anonymous user id).
type KVEntry struct {
	K         string    `gorm:"type:varchar(128);primaryKey"`
	V         string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the database table name for KVEntry.
func (KVEntry) TableName() string { return "kv_store" }
