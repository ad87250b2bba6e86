package settings

import (
	"time"

	"github.com/finsight-pos/finsight-pos/internal/catalog/categories"
	"github.com/finsight-pos/finsight-pos/internal/catalog/products"
	"github.com/finsight-pos/finsight-pos/internal/sales"
	"github.com/finsight-pos/finsight-pos/internal/users"
)

// SnapshotVersion is the export format version accepted on import.
const SnapshotVersion = "1.0"

// Snapshot is the full backup document served by export and accepted by
// import. Password hashes never serialize; the users block is directory
// data only.
type Snapshot struct {
	Version   string       `json:"version"`
	Timestamp time.Time    `json:"timestamp"`
	Data      SnapshotData `json:"data"`
}

type SnapshotData struct {
	Users        []users.User          `json:"users"`
	Categories   []categories.Category `json:"categories"`
	Products     []products.Product    `json:"products"`
	Transactions []sales.Sale          `json:"transactions"`
}

// ImportSummary reports what a restore touched. Users and transactions are
// never written by import, so they have no counters here.
type ImportSummary struct {
	CategoriesUpserted int `json:"categories_upserted"`
	ProductsUpserted   int `json:"products_upserted"`
}
