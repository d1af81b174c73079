package aggregates

// WriteTxOwnership says which layer opens and closes the transaction around
// a parent+children write.
type WriteTxOwnership string

// WriteTxOwnedByAggregate: the aggregate opens the transaction itself, so a
// strategy and its indicators (or a portfolio and its assets) commit or roll
// back as one unit.
const WriteTxOwnedByAggregate WriteTxOwnership = "aggregate_owned"

// ReadPolicy says where reads live relative to the aggregate.
type ReadPolicy string

const (
	// ReadPolicyInvariantScoped restricts the aggregate to the reads its own
	// write decisions need, like the duplicate-title pre-check.
	ReadPolicyInvariantScoped ReadPolicy = "invariant_scoped_reads"
	// ReadPolicyTableRepoQueries leaves list and owner-scoped queries to the
	// table repos; services compose them outside any transaction.
	ReadPolicyTableRepoQueries ReadPolicy = "table_repo_queries"
)

// Contract pins down an aggregate's transaction and read policy so the data
// layer can be checked against it.
type Contract struct {
	Name             string
	WriteTxOwnership WriteTxOwnership
	ReadPolicy       ReadPolicy
	Notes            string
}

// Aggregate is implemented by every aggregate writer in the data layer.
type Aggregate interface {
	Contract() Contract
}
