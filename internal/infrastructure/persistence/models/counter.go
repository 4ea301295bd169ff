package models

// CounterModel is one named sequence. Rows are created on first use and
// never deleted.
type CounterModel struct {
	Name string `gorm:"type:varchar(64);primaryKey"`
	Seq  int64  `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (CounterModel) TableName() string {
	return "counters"
}
