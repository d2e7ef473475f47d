package merge

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"newsmerge/models"
	"newsmerge/records"
)

// ErrSourceNotFound reports that the source record set does not exist.
// Without it there is nothing meaningful to merge.
var ErrSourceNotFound = errors.New("source record set not found")

// Result summarizes a completed merge run.
type Result struct {
	MasterPath string
	SourceRows int
	MasterRows int // rows in the master before the merge
	Added      int
	Total      int
}

// Merge computes the deduplicated, time-sorted union of the master and
// source record sets. Identity is the record's id field, tolerating a
// marker-prefixed header. When the same id occurs more than once across
// master and source the last write wins, so the source's version of a
// shared id replaces the master's. Rows without a resolvable id are
// always kept and never deduplicated against anything. The result is
// sorted by pubDate descending with a stable order for ties and
// unparsable dates.
func Merge(source, master *models.Set) *models.Set {
	// Identity index over the master. Id-less rows never participate.
	existing := make(map[string]struct{}, master.Len())
	for _, record := range master.Records {
		if id := record.ID(); id != "" {
			existing[id] = struct{}{}
		}
	}

	// Classify source rows for the diagnostics. No resolvable id means
	// guaranteed-new: a row we cannot identify can never be proven a
	// duplicate. Identical id-less rows therefore accumulate; a
	// content-hash fallback key would catch those but would change the
	// identity contract.
	fresh := 0
	for _, record := range source.Records {
		id := record.ID()
		if id == "" {
			fresh++
			continue
		}
		if _, ok := existing[id]; !ok {
			fresh++
		}
	}
	log.WithField("newRows", fresh).Info("Classified source rows")

	// Master first, then the full source set, so that the source's
	// version of a shared id wins the dedup below. An empty master makes
	// this the bootstrap run over the source set alone.
	combined := make([]models.Record, 0, master.Len()+source.Len())
	combined = append(combined, master.Records...)
	combined = append(combined, source.Records...)

	// Dedupe by id: the first occurrence keeps its slot, the last
	// occurrence's fields win.
	deduped := make([]models.Record, 0, len(combined))
	slot := make(map[string]int, len(combined))
	for _, record := range combined {
		id := record.ID()
		if id == "" {
			deduped = append(deduped, record)
			continue
		}
		if at, ok := slot[id]; ok {
			deduped[at] = record
			continue
		}
		slot[id] = len(deduped)
		deduped = append(deduped, record)
	}

	// Newest first. Ties and unparsable dates keep their sequence order.
	sort.SliceStable(deduped, func(i, j int) bool {
		return ParsePubDate(deduped[i].PubDate()).After(ParsePubDate(deduped[j].PubDate()))
	})

	return &models.Set{
		Fields:  SchemaUnion(master, source),
		Records: deduped,
	}
}

// SchemaUnion returns the ordered union of both sets' field names, the
// master's fields first, preserving first-seen order.
func SchemaUnion(master, source *models.Set) []string {
	fields := make([]string, 0, len(master.Fields)+len(source.Fields))
	fields = append(fields, master.Fields...)
	fields = append(fields, source.Fields...)
	return lo.Uniq(fields)
}

// Run merges the record set at sourcePath into the one at masterPath and
// persists the result back to masterPath. The master may not exist yet;
// the source must, or Run fails with ErrSourceNotFound before anything is
// written.
func Run(fs billy.Filesystem, sourcePath, masterPath string) (*Result, error) {
	if !records.Exists(fs, sourcePath) {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, sourcePath)
	}

	reader := records.NewReader(fs)
	source, err := reader.Read(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	master, err := reader.Read(masterPath)
	if err != nil {
		return nil, fmt.Errorf("read master: %w", err)
	}

	log.WithFields(log.Fields{
		"source":     sourcePath,
		"sourceRows": source.Len(),
		"master":     masterPath,
		"masterRows": master.Len(),
	}).Info("Merging record sets")
	logRecordSet("source", source)
	logRecordSet("master", master)

	merged := Merge(source, master)

	if err := records.NewWriter(fs).Write(masterPath, merged, merged.Fields); err != nil {
		return nil, fmt.Errorf("write master: %w", err)
	}

	result := &Result{
		MasterPath: masterPath,
		SourceRows: source.Len(),
		MasterRows: master.Len(),
		Added:      merged.Len() - master.Len(),
		Total:      merged.Len(),
	}

	log.WithFields(log.Fields{
		"master": masterPath,
		"added":  result.Added,
		"total":  result.Total,
	}).Info("Merge complete")

	return result, nil
}

const idSampleSize = 10

func logRecordSet(role string, set *models.Set) {
	if set.Empty() {
		return
	}
	sample := make([]string, 0, idSampleSize)
	for _, record := range set.Records {
		if id := record.ID(); id != "" {
			sample = append(sample, models.SafeString(id))
			if len(sample) == idSampleSize {
				break
			}
		}
	}
	log.WithFields(log.Fields{
		"role": role,
		"fields": lo.Map(set.Fields, func(field string, _ int) string {
			return models.SafeString(field)
		}),
		"sampleIds": sample,
	}).Debug("Record set loaded")
}
