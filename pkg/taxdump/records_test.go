package taxdump_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gnames/treetax/pkg/taxdump"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordString(t *testing.T) {
	tests := []struct {
		msg string
		rec interface{ String() string }
		res string
	}{
		{
			msg: "node",
			rec: taxdump.NodeRecord{ID: 3, ParentID: 2, Rank: taxdump.NoRank},
			res: "3\t|\t2\t|\tno rank\t|\n",
		},
		{
			msg: "name",
			rec: taxdump.NameRecord{
				ID: 3, Name: "Aus", AltName: "aus",
				Class: taxdump.ScientificName,
			},
			res: "3\t|\tAus\t|\taus\t|\tscientific name\t|\n",
		},
		{
			msg: "name without alternative",
			rec: taxdump.NameRecord{
				ID: 1, Name: "all", Class: taxdump.Synonym,
			},
			res: "1\t|\tall\t|\t|\tsynonym\t|\n",
		},
		{
			msg: "seqid",
			rec: taxdump.SeqIDRecord{SeqID: "A_seq1", TaxID: 3},
			res: "A_seq1\t3\n",
		},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, v.rec.String(), v.msg)
	}
}

// TestWritePreamble verifies the fixed root lines.
func TestWritePreamble(t *testing.T) {
	var nodes, names, seqs bytes.Buffer
	w := taxdump.NewDmpWriter(&nodes, &names, &seqs)

	err := taxdump.WritePreamble(w)
	require.NoError(t, err)

	assert.Equal(t, "1\t|\t1\t|\tno rank\t|\n", nodes.String())
	assert.Equal(t,
		"1\t|\tall\t|\t|\tsynonym\t|\n"+
			"1\t|\troot\t|\t|\tscientific name\t|\n",
		names.String())
	assert.Empty(t, seqs.String())
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

// TestMultiWriter verifies records reach every writer and errors stop
// the fan-out.
func TestMultiWriter(t *testing.T) {
	var n1, a1, s1, n2, a2, s2 bytes.Buffer
	w := taxdump.MultiWriter(
		taxdump.NewDmpWriter(&n1, &a1, &s1),
		taxdump.NewDmpWriter(&n2, &a2, &s2),
	)

	require.NoError(t, w.WriteNode(taxdump.NodeRecord{ID: 2, ParentID: 1, Rank: "no rank"}))
	require.NoError(t, w.WriteSeqID(taxdump.SeqIDRecord{SeqID: "s", TaxID: 2}))
	assert.Equal(t, n1.String(), n2.String())
	assert.Equal(t, s1.String(), s2.String())
	assert.NotEmpty(t, n1.String())

	bad := taxdump.MultiWriter(
		taxdump.NewDmpWriter(failWriter{}, failWriter{}, failWriter{}),
		taxdump.NewDmpWriter(&n2, &a2, &s2),
	)
	err := bad.WriteName(taxdump.NameRecord{ID: 2, Name: "x"})
	assert.Error(t, err)
	assert.Empty(t, a2.String())
}
