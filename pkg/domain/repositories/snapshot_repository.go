package repositories

import "github.com/vsinha/bigen/pkg/domain/entities"

// TableReader provides raw access to the files of a snapshot
type TableReader interface {
	ReadTable(table entities.Table) (*entities.RawTable, error)
}

// SnapshotRepository reads a written snapshot back as typed rows
type SnapshotRepository interface {
	TableReader
	LoadSnapshot() (*entities.Snapshot, error)
}
