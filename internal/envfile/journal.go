package envfile

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

const (
	emptyJournalContentConstant          = "{}"
	journalIndentationConstant           = "    "
	journalWidthConstant                 = 80
	journalPathSpecialCharactersConstant = `\.*?|#@!:`
	journalPathEscapeConstant            = `\`
	invalidJournalMessageConstant        = "description journal is not a JSON object"
	journalReadErrorTemplateConstant     = "read description journal %s: %w"
	journalUpdateErrorTemplateConstant   = "update description journal %s: %w"
)

// ErrInvalidJournal indicates the description journal does not hold a JSON object.
var ErrInvalidJournal = errors.New(invalidJournalMessageConstant)

// DescriptionJournal records a human-readable description per variable in a JSON object.
// Descriptions are only ever appended; a key that already has a description keeps it.
type DescriptionJournal struct {
	path string
}

// NewDescriptionJournal constructs a journal stored at path.
func NewDescriptionJournal(path string) DescriptionJournal {
	return DescriptionJournal{path: path}
}

// Has reports whether key already has a description.
func (journal DescriptionJournal) Has(key string) (bool, error) {
	_, found, lookupError := journal.Description(key)
	return found, lookupError
}

// Description returns the recorded description for key.
func (journal DescriptionJournal) Description(key string) (string, bool, error) {
	content, loadError := journal.load()
	if loadError != nil {
		return "", false, loadError
	}
	result := gjson.GetBytes(content, escapeJournalPath(key))
	if !result.Exists() {
		return "", false, nil
	}
	return result.String(), true, nil
}

// Record appends description for key unless the key is already described.
func (journal DescriptionJournal) Record(key string, description string) error {
	content, loadError := journal.load()
	if loadError != nil {
		return loadError
	}
	path := escapeJournalPath(key)
	if gjson.GetBytes(content, path).Exists() {
		return nil
	}

	updated, setError := sjson.SetBytes(content, path, description)
	if setError != nil {
		return fmt.Errorf(journalUpdateErrorTemplateConstant, journal.path, setError)
	}
	formatted := pretty.PrettyOptions(updated, &pretty.Options{
		Width:  journalWidthConstant,
		Indent: journalIndentationConstant,
	})
	return writeOutputFile(journal.path, formatted)
}

func (journal DescriptionJournal) load() ([]byte, error) {
	content, readError := os.ReadFile(journal.path)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return []byte(emptyJournalContentConstant), nil
		}
		return nil, fmt.Errorf(journalReadErrorTemplateConstant, journal.path, readError)
	}
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return []byte(emptyJournalContentConstant), nil
	}
	if !gjson.ValidBytes(trimmed) || !gjson.ParseBytes(trimmed).IsObject() {
		return nil, fmt.Errorf(journalReadErrorTemplateConstant, journal.path, ErrInvalidJournal)
	}
	return trimmed, nil
}

func escapeJournalPath(key string) string {
	var builder strings.Builder
	for _, character := range key {
		if strings.ContainsRune(journalPathSpecialCharactersConstant, character) {
			builder.WriteString(journalPathEscapeConstant)
		}
		builder.WriteRune(character)
	}
	return builder.String()
}
