package pipeline

import "github.com/Vinayaksharma17/Blockchain-Supplychain-Management/internal/products"

// LedgerEntry is one line of the hash ledger side file.
type LedgerEntry = products.LedgerEntry

// BuildLedger anchors every record's meta hash, in record order.
func BuildLedger(records []products.Product) []LedgerEntry {
	entries := make([]LedgerEntry, len(records))
	for i, p := range records {
		entries[i] = LedgerEntry{ProductID: p.ID, ProductHash: p.MetaHash}
	}
	return entries
}
