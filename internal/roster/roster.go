// Package roster reads and writes participant lists. The search core only
// sees in-memory values; every format concern lives here.
package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/tidwall/gjson"

	"groupmix/internal/model"
)

// DefaultDelimiter matches the tab-separated input the tool was built for.
const DefaultDelimiter = '\t'

// Load reads delimited participant records. Records may have differing field
// counts; column validity is checked at metric evaluation time.
func Load(r io.Reader, delimiter rune) (model.Roster, error) {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}

	out := make(model.Roster, 0, len(records))
	for _, rec := range records {
		out = append(out, model.Participant(rec))
	}
	return out, nil
}

func LoadFile(path string, delimiter rune) (model.Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f, delimiter)
}

// LoadJSON reads a roster from a JSON array of arrays; every scalar becomes
// one string field, so numeric columns survive unchanged for later parsing.
func LoadJSON(data []byte) (model.Roster, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON roster")
	}
	parsed := gjson.ParseBytes(data)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("JSON roster must be an array of records")
	}

	var out model.Roster
	var badRecord error
	parsed.ForEach(func(_, rec gjson.Result) bool {
		if !rec.IsArray() {
			badRecord = fmt.Errorf("JSON roster record %d is not an array", len(out))
			return false
		}
		var p model.Participant
		rec.ForEach(func(_, v gjson.Result) bool {
			p = append(p, v.String())
			return true
		})
		out = append(out, p)
		return true
	})
	if badRecord != nil {
		return nil, badRecord
	}
	return out, nil
}

// WriteGroups emits every participant with its 1-based group index appended
// as a trailing field. Records are copied before the index is appended so
// the partition passed in is left untouched.
func WriteGroups(w io.Writer, p model.Partition, delimiter rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = delimiter

	for i, group := range p {
		for _, member := range group {
			var rec []string
			if err := copier.Copy(&rec, member); err != nil {
				return fmt.Errorf("copy record: %w", err)
			}
			rec = append(rec, strconv.Itoa(i+1))
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("write record: %w", err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteGroupsFile(path string, p model.Partition, delimiter rune) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteGroups(f, p, delimiter); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Print renders groups for humans, one block per group, showing the chosen
// display column of each member (the full record when out of range).
func Print(w io.Writer, p model.Partition, displayColumn int) {
	for i, group := range p {
		fmt.Fprintf(w, "Group %d\n", i+1)
		for _, member := range group {
			if displayColumn >= 0 && displayColumn < len(member) {
				fmt.Fprintf(w, "\t%s\n", member[displayColumn])
			} else {
				fmt.Fprintf(w, "\t%s\n", strings.Join(member, " "))
			}
		}
		fmt.Fprintln(w)
	}
}
