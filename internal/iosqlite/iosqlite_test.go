package iosqlite

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnuuid"
	"github.com/gnames/treetax/pkg/errcode"
	"github.com/gnames/treetax/pkg/taxdump"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func export(t *testing.T, path string) {
	t.Helper()
	e, err := New(path)
	require.NoError(t, err)

	require.NoError(t, taxdump.WritePreamble(e))
	require.NoError(t, e.WriteName(taxdump.NameRecord{
		ID: 2, Name: "Homo sapiens", AltName: "homo sapiens",
		Class: taxdump.ScientificName,
	}))
	require.NoError(t, e.WriteNode(taxdump.NodeRecord{
		ID: 2, ParentID: 1, Rank: taxdump.NoRank,
	}))
	require.NoError(t, e.WriteSeqID(taxdump.SeqIDRecord{
		SeqID: "Homo sapiens_seq1", TaxID: 2,
	}))
	require.NoError(t, e.Close())
}

// TestExporter verifies the content of the tables.
func TestExporter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tax.sqlite")
	export(t, path)

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow("SELECT count(*) FROM nodes").Scan(&count))
	assert.Equal(t, 2, count)
	require.NoError(t, db.QueryRow("SELECT count(*) FROM names").Scan(&count))
	assert.Equal(t, 3, count)

	var parent int
	var rank string
	err = db.QueryRow(
		"SELECT parent_tax_id, rank FROM nodes WHERE tax_id = 2",
	).Scan(&parent, &rank)
	require.NoError(t, err)
	assert.Equal(t, 1, parent)
	assert.Equal(t, taxdump.NoRank, rank)

	var nameID uuid.UUID
	var alt string
	err = db.QueryRow(
		"SELECT name_id, alt_name FROM names WHERE tax_id = 2",
	).Scan(&nameID, &alt)
	require.NoError(t, err)
	assert.Equal(t, gnuuid.New("Homo sapiens"), nameID)
	assert.Equal(t, NameID("Homo sapiens"), nameID)
	assert.Equal(t, uuid.Version(5), nameID.Version())
	assert.Equal(t, "homo sapiens", alt)

	var taxID int
	err = db.QueryRow(
		"SELECT tax_id FROM seqid2taxid WHERE seq_id = ?", "Homo sapiens_seq1",
	).Scan(&taxID)
	require.NoError(t, err)
	assert.Equal(t, 2, taxID)
}

// TestExporter_Replace verifies a second export replaces the tables.
func TestExporter_Replace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tax.sqlite")
	export(t, path)
	export(t, path)

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow("SELECT count(*) FROM seqid2taxid").Scan(&count))
	assert.Equal(t, 1, count)
}

// TestExporter_Abort verifies nothing is saved after abort.
func TestExporter_Abort(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tax.sqlite")
	e, err := New(path)
	require.NoError(t, err)
	require.NoError(t, taxdump.WritePreamble(e))
	e.Abort()

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow("SELECT count(*) FROM nodes").Scan(&count))
	assert.Equal(t, 0, count)
}

// TestExporter_InsertError verifies a duplicate key is reported.
func TestExporter_InsertError(t *testing.T) {
	e, err := New(filepath.Join(t.TempDir(), "tax.sqlite"))
	require.NoError(t, err)
	defer e.Abort()

	rec := taxdump.SeqIDRecord{SeqID: "A_s", TaxID: 2}
	require.NoError(t, e.WriteSeqID(rec))
	err = e.WriteSeqID(rec)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.SQLiteInsertError, gnErr.Code)
	assert.Equal(t, "seqid2taxid", gnErr.Vars[0])
}

// TestNew_BadPath verifies the error for a database in a missing
// directory.
func TestNew_BadPath(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "no", "tax.sqlite"))
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.SQLiteOpenError, gnErr.Code)
}
