// Package treetax converts phylogenetic trees to flat NCBI-style
// taxonomy dumps and back.
package treetax

var (
	// Version of treetax, set by build flags.
	Version = "v0.1.0"
	// Build timestamp, set by build flags.
	Build = "n/a"
)

// Builder runs the forward pipeline: a Newick tree and a directory of
// per-taxon FASTA files become nodes.dmp, names.dmp, seqid2taxid.map
// and a merged FASTA file.
type Builder interface {
	Build() (*BuildResult, error)
}

// Converter runs the inverse pipeline: names.dmp and nodes.dmp become a
// Newick tree.
type Converter interface {
	Convert() (*ConvertResult, error)
}

// BuildResult describes the files written by a Builder and the size of
// the produced taxonomy.
type BuildResult struct {
	FastaPath  string
	NodesPath  string
	NamesPath  string
	SeqIDPath  string
	SQLitePath string

	// Name is the database name used as prefix of all output files.
	Name string

	Taxa      int
	Sequences int
	Residues  int64
	// LastTaxID is the highest taxonomic id assigned.
	LastTaxID int
}

// CentrifugeCommand returns a ready to run centrifuge-build command line
// for the produced files.
func (r *BuildResult) CentrifugeCommand() string {
	return "centrifuge-build --conversion-table " + r.SeqIDPath +
		" --taxonomy-tree " + r.NodesPath +
		" --name-table " + r.NamesPath +
		" " + r.FastaPath + " " + r.Name
}

// Outputs returns the paths of all files written by the build.
func (r *BuildResult) Outputs() []string {
	res := []string{r.FastaPath, r.NodesPath, r.NamesPath, r.SeqIDPath}
	if r.SQLitePath != "" {
		res = append(res, r.SQLitePath)
	}
	return res
}

// ConvertResult describes the tree written by a Converter.
type ConvertResult struct {
	TreePath string

	// Nodes is the number of nodes in the reconstructed tree.
	Nodes int
	// Duplicates is the number of node records skipped because their
	// name was already present in the tree.
	Duplicates int
	// Ambiguous is the number of lookups that matched more than one
	// node.
	Ambiguous int
}
