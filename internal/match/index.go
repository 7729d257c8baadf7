package match

import (
	"sort"
	"strconv"
	"strings"

	"github.com/macuoit/articulation-backend/internal/model"
)

// partitionIndex holds the exact-match lookup tables for one catalog
// partition. Keys are normalized; the earliest-inserted row wins on
// duplicates, so catalog order decides ties.
type partitionIndex struct {
	name       string
	byCode     map[string]model.CatalogRow
	byCombined map[string]model.CatalogRow
}

func newPartitionIndex(name string) *partitionIndex {
	return &partitionIndex{
		name:       name,
		byCode:     make(map[string]model.CatalogRow),
		byCombined: make(map[string]model.CatalogRow),
	}
}

func (p *partitionIndex) insert(key string, table map[string]model.CatalogRow, row model.CatalogRow) {
	if key == "" {
		return
	}
	if _, exists := table[key]; !exists {
		table[key] = row
	}
}

// LookupCode finds a row by normalized course-code key.
func (p *partitionIndex) LookupCode(key string) (model.CatalogRow, bool) {
	row, ok := p.byCode[key]
	return row, ok
}

// LookupCombined finds a row by normalized combined code+title key.
func (p *partitionIndex) LookupCombined(key string) (model.CatalogRow, bool) {
	row, ok := p.byCombined[key]
	return row, ok
}

// Index is the read-only lookup structure built once per run over the
// reference catalog. Safe for concurrent readers after BuildIndex returns.
type Index struct {
	partitions     map[string]*partitionIndex
	partitionOrder []string
	home           map[string]model.CatalogRow
	rowCounts      map[string]int
}

// BuildIndex constructs per-partition lookup tables plus the filtered
// home-institution view keyed by normalized common code. Code keys come
// from the combined text only; the CourseCode column is display data and
// never a match key. Row order in the input is significant: the first row
// to claim a key keeps it.
func BuildIndex(rows []model.CatalogRow, homeInstitution string) *Index {
	idx := &Index{
		partitions: make(map[string]*partitionIndex),
		home:       make(map[string]model.CatalogRow),
		rowCounts:  make(map[string]int),
	}

	for _, row := range rows {
		p, ok := idx.partitions[row.SourcePartition]
		if !ok {
			p = newPartitionIndex(row.SourcePartition)
			idx.partitions[row.SourcePartition] = p
			idx.partitionOrder = append(idx.partitionOrder, row.SourcePartition)
		}
		idx.rowCounts[row.SourcePartition]++

		p.insert(ExtractCourseCode(row.Combined), p.byCode, row)
		p.insert(Normalize(row.Combined), p.byCombined, row)

		if strings.EqualFold(row.Institution, homeInstitution) {
			if common := Normalize(row.CommonCode); common != "" {
				if _, exists := idx.home[common]; !exists {
					idx.home[common] = row
				}
			}
		}
	}

	return idx
}

// Partition returns the lookup tables for one partition, or nil.
func (idx *Index) Partition(name string) *partitionIndex {
	return idx.partitions[name]
}

// PartitionNames lists partitions in catalog iteration order.
func (idx *Index) PartitionNames() []string {
	return idx.partitionOrder
}

// PartitionInfos summarizes the loaded partitions for the admin surface.
func (idx *Index) PartitionInfos() []model.PartitionInfo {
	infos := make([]model.PartitionInfo, 0, len(idx.partitionOrder))
	for _, name := range idx.partitionOrder {
		infos = append(infos, model.PartitionInfo{Name: name, RowCount: idx.rowCounts[name]})
	}
	return infos
}

// HomeByCommonCode finds the home institution's row for a normalized
// common code.
func (idx *Index) HomeByCommonCode(commonCode string) (model.CatalogRow, bool) {
	row, ok := idx.home[commonCode]
	return row, ok
}

// ClosestPartitions orders every partition other than target by numeric
// distance of its opening year from the target's, ties broken by catalog
// iteration order. Unparsable names fall back to iteration order.
func (idx *Index) ClosestPartitions(target string) []string {
	others := make([]string, 0, len(idx.partitionOrder))
	for _, name := range idx.partitionOrder {
		if name != target {
			others = append(others, name)
		}
	}

	targetYear, ok := openingYear(target)
	if !ok {
		return others
	}

	sort.SliceStable(others, func(i, j int) bool {
		yi, oki := openingYear(others[i])
		yj, okj := openingYear(others[j])
		if !oki || !okj {
			return false
		}
		di, dj := targetYear-yi, targetYear-yj
		if di < 0 {
			di = -di
		}
		if dj < 0 {
			dj = -dj
		}
		return di < dj
	})
	return others
}

// openingYear parses the leading year of a "YYYY-YYYY" partition name.
func openingYear(partition string) (int, bool) {
	head, _, _ := strings.Cut(partition, "-")
	y, err := strconv.Atoi(head)
	if err != nil {
		return 0, false
	}
	return y, true
}
