// Package types holds the data structures shared by the handlers and the
// storage backends. Keeping them here lets both layers import the model
// without importing each other.
package types

import "github.com/google/uuid"

// MaxNameLength bounds every text field of a Student.
const MaxNameLength = 50

// Student is the only resource the API exposes.
//
// The three tag families each serve one layer:
//
//   - json:"..."     the wire shape ({"id","firstName","lastName","program"})
//   - validate:"..." rules checked by go-playground/validator before any write
//   - gorm:"..."     column mapping for the gorm gateway; the sqlite gateway
//     maps the same columns by hand
//
// ID carries no validate tag: the server assigns it on create and the path
// supplies it on update.
type Student struct {
	ID        uuid.UUID `json:"id"        gorm:"type:uuid;primaryKey"`
	FirstName string    `json:"firstName" gorm:"size:50;not null" validate:"required,max=50"`
	LastName  string    `json:"lastName"  gorm:"size:50;not null" validate:"required,max=50"`
	Program   string    `json:"program"   gorm:"size:50;not null" validate:"required,max=50"`
}

// TableName pins the table name so both gateways agree on it.
func (Student) TableName() string {
	return "students"
}
