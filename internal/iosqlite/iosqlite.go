// Package iosqlite saves a flat taxonomy into an SQLite database.
//
// The database has three tables that mirror the dump files: nodes,
// names and seqid2taxid. Every name gets a UUID v5 name_id computed
// from the name string, so the same name has the same id in all
// databases.
package iosqlite

import (
	"database/sql"

	"github.com/gnames/gnuuid"
	"github.com/gnames/treetax/pkg/taxdump"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
DROP TABLE IF EXISTS nodes;
DROP TABLE IF EXISTS names;
DROP TABLE IF EXISTS seqid2taxid;

CREATE TABLE nodes (
	tax_id INTEGER PRIMARY KEY,
	parent_tax_id INTEGER NOT NULL,
	rank TEXT NOT NULL
);
CREATE INDEX nodes_parent_tax_id ON nodes (parent_tax_id);

CREATE TABLE names (
	tax_id INTEGER NOT NULL,
	name_id TEXT NOT NULL,
	name TEXT NOT NULL,
	alt_name TEXT NOT NULL,
	name_class TEXT NOT NULL
);
CREATE INDEX names_tax_id ON names (tax_id);
CREATE INDEX names_name_id ON names (name_id);

CREATE TABLE seqid2taxid (
	seq_id TEXT PRIMARY KEY,
	tax_id INTEGER NOT NULL
);
CREATE INDEX seqid2taxid_tax_id ON seqid2taxid (tax_id);
`

// Exporter writes taxonomy records into an SQLite database inside one
// transaction. It implements taxdump.Writer.
type Exporter struct {
	path string
	db   *sql.DB
	tx   *sql.Tx

	nodeStmt *sql.Stmt
	nameStmt *sql.Stmt
	seqStmt  *sql.Stmt
}

var _ taxdump.Writer = (*Exporter)(nil)

// New opens or creates the database at path, replaces its tables and
// starts a transaction.
func New(path string) (*Exporter, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, OpenError(path, err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, OpenError(path, err)
	}

	if _, err = db.Exec(schema); err != nil {
		db.Close()
		return nil, SchemaError(path, err)
	}

	res := &Exporter{path: path, db: db}
	if err = res.prepare(); err != nil {
		res.Abort()
		return nil, err
	}
	return res, nil
}

func (e *Exporter) prepare() error {
	var err error
	if e.tx, err = e.db.Begin(); err != nil {
		return OpenError(e.path, err)
	}

	e.nodeStmt, err = e.tx.Prepare(`INSERT INTO nodes
		(tax_id, parent_tax_id, rank) VALUES (?, ?, ?)`)
	if err != nil {
		return InsertError("nodes", err)
	}
	e.nameStmt, err = e.tx.Prepare(`INSERT INTO names
		(tax_id, name_id, name, alt_name, name_class) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return InsertError("names", err)
	}
	e.seqStmt, err = e.tx.Prepare(`INSERT INTO seqid2taxid
		(seq_id, tax_id) VALUES (?, ?)`)
	if err != nil {
		return InsertError("seqid2taxid", err)
	}
	return nil
}

// WriteNode saves a node record.
func (e *Exporter) WriteNode(r taxdump.NodeRecord) error {
	_, err := e.nodeStmt.Exec(r.ID, r.ParentID, r.Rank)
	if err != nil {
		return InsertError("nodes", err)
	}
	return nil
}

// NameID returns the UUID v5 of a name string.
func NameID(name string) uuid.UUID {
	return gnuuid.New(name)
}

// WriteName saves a name record.
func (e *Exporter) WriteName(r taxdump.NameRecord) error {
	_, err := e.nameStmt.Exec(r.ID, NameID(r.Name), r.Name, r.AltName, r.Class)
	if err != nil {
		return InsertError("names", err)
	}
	return nil
}

// WriteSeqID saves a seqid2taxid record.
func (e *Exporter) WriteSeqID(r taxdump.SeqIDRecord) error {
	_, err := e.seqStmt.Exec(r.SeqID, r.TaxID)
	if err != nil {
		return InsertError("seqid2taxid", err)
	}
	return nil
}

// Close commits the transaction and closes the database.
func (e *Exporter) Close() error {
	err := e.tx.Commit()
	e.tx = nil
	if cerr := e.db.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return OpenError(e.path, err)
	}
	return nil
}

// Abort rolls back the transaction and closes the database.
func (e *Exporter) Abort() {
	if e.tx != nil {
		e.tx.Rollback()
		e.tx = nil
	}
	e.db.Close()
}
