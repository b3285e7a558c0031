package models

import "time"

// JournalTable is the table every sub-reconciliation is recorded in.
const JournalTable = "sync_journal"

// Journal roles.
const (
	RoleNew    = "new"
	RoleOld    = "old"
	RoleDirect = "direct"
)

// JournalEntry records one reconciliation of an asset against one product.
type JournalEntry struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PublicID  string    `gorm:"column:public_id;type:varchar(255);index" json:"publicId"`
	SKU       string    `gorm:"column:sku;type:varchar(255);index" json:"sku"`
	Role      string    `gorm:"column:role;type:varchar(16);not null" json:"role"`
	Mode      string    `gorm:"column:mode;type:varchar(16)" json:"mode"`
	Status    int       `gorm:"column:status;not null" json:"status"`
	Result    string    `gorm:"column:result;type:varchar(16);not null" json:"result"`
	ProductID string    `gorm:"column:product_id;type:varchar(64)" json:"productId,omitempty"`
	Version   int64     `gorm:"column:version" json:"version,omitempty"`
	Actions   string    `gorm:"column:actions;type:text" json:"actions,omitempty"`
	Error     string    `gorm:"column:error;type:text" json:"error,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

// TableName pins the gorm table name.
func (JournalEntry) TableName() string {
	return JournalTable
}

// JournalColumns lists the columns the health check expects on the journal table.
func JournalColumns() []string {
	return []string{
		"id", "public_id", "sku", "role", "mode", "status", "result",
		"product_id", "version", "actions", "error", "created_at",
	}
}
