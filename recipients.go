package notifyutils

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// DefaultMaxRowCount bounds how many recipient rows one upload may
// carry.
const DefaultMaxRowCount = 50000

// Template type constants.
const (
	TemplateTypeSMS    = "sms"
	TemplateTypeEmail  = "email"
	TemplateTypeLetter = "letter"
)

// Recipient columns per template type, by normalized name.
var (
	smsRecipientColumns   = []string{"phone number"}
	emailRecipientColumns = []string{"email address"}

	letterAddressColumns = []string{
		"address line 1",
		"address line 2",
		"address line 3",
		"address line 4",
		"address line 5",
		"address line 6",
		"postcode",
	}
)

// Cell is one value in a recipient row, annotated with any validation
// error. Ignored marks columns the template makes no use of.
type Cell struct {
	Header  string
	Value   string
	Err     error
	Ignored bool
}

// Row is one parsed recipient row.
type Row struct {
	// Index is the zero-based data row number, not counting the header.
	Index int

	cells           map[string]Cell
	recipientErr    error
	missingColumns  []string
	personalisation Columns
	fragmentCount   int
}

// Get returns the cell for any spelling of header.
func (r Row) Get(header string) (Cell, bool) {
	cell, ok := r.cells[NormalizeKey(header)]
	return cell, ok
}

// Personalisation returns the row's values keyed for template
// substitution.
func (r Row) Personalisation() Columns {
	return r.personalisation
}

// HasBadRecipient reports whether the recipient cell failed validation.
func (r Row) HasBadRecipient() bool {
	return r.recipientErr != nil
}

// RecipientError returns the recipient validation error, if any.
func (r Row) RecipientError() error {
	return r.recipientErr
}

// HasMissingData reports whether any required placeholder column is
// empty in this row.
func (r Row) HasMissingData() bool {
	return len(r.missingColumns) > 0
}

// MissingColumns lists the placeholder columns this row left empty.
func (r Row) MissingColumns() []string {
	return r.missingColumns
}

// HasError reports whether anything is wrong with this row.
func (r Row) HasError() bool {
	return r.HasBadRecipient() || r.HasMissingData()
}

// FragmentCount returns the SMS fragments this row's message will use.
// Zero for non-SMS uploads or when no message content was supplied.
func (r Row) FragmentCount() int {
	return r.fragmentCount
}

// RecipientCSV parses uploaded CSV data and pairs it with a template's
// placeholders.
type RecipientCSV struct {
	templateType string
	placeholders []string
	maxRows      int
	safelist     map[string]struct{}
	smsContent   string

	headers     []string
	rows        []Row
	tooManyRows bool
}

// RecipientCSVOption configures parsing.
type RecipientCSVOption func(*RecipientCSV)

// WithTemplateType sets which recipient columns are required and how
// they are validated. Defaults to email.
func WithTemplateType(templateType string) RecipientCSVOption {
	return func(c *RecipientCSV) { c.templateType = templateType }
}

// WithPlaceholders lists the template placeholders every row must
// provide values for.
func WithPlaceholders(placeholders []string) RecipientCSVOption {
	return func(c *RecipientCSV) { c.placeholders = placeholders }
}

// WithMaxRows overrides the row count limit.
func WithMaxRows(n int) RecipientCSVOption {
	return func(c *RecipientCSV) { c.maxRows = n }
}

// WithSafelist restricts recipients to the given set, as trial mode
// services require.
func WithSafelist(recipients []string) RecipientCSVOption {
	return func(c *RecipientCSV) {
		c.safelist = make(map[string]struct{}, len(recipients))
		for _, recipient := range recipients {
			c.safelist[normalizeRecipient(recipient)] = struct{}{}
		}
	}
}

// WithSMSContent supplies the message content used to compute per-row
// fragment counts for SMS uploads.
func WithSMSContent(content string) RecipientCSVOption {
	return func(c *RecipientCSV) { c.smsContent = content }
}

// NewRecipientCSV parses data and validates every row.
func NewRecipientCSV(data string, opts ...RecipientCSVOption) (*RecipientCSV, error) {
	c := &RecipientCSV{
		templateType: TemplateTypeEmail,
		maxRows:      DefaultMaxRowCount,
	}
	for _, opt := range opts {
		opt(c)
	}

	reader := csv.NewReader(strings.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCSVParse, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no header row", ErrCSVParse)
	}

	c.headers = records[0]
	for _, record := range records[1:] {
		if recordIsEmpty(record) {
			continue
		}
		if len(c.rows) >= c.maxRows {
			c.tooManyRows = true
			break
		}
		c.rows = append(c.rows, c.buildRow(len(c.rows), record))
	}
	return c, nil
}

func recordIsEmpty(record []string) bool {
	for _, value := range record {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

// ColumnHeaders returns the headers as uploaded.
func (c *RecipientCSV) ColumnHeaders() []string {
	return c.headers
}

// recipientColumns returns the recipient columns for the template type.
func (c *RecipientCSV) recipientColumns() []string {
	switch c.templateType {
	case TemplateTypeSMS:
		return smsRecipientColumns
	case TemplateTypeLetter:
		return letterAddressColumns
	default:
		return emailRecipientColumns
	}
}

// requiredColumns returns the recipient columns every upload needs plus
// the template placeholders. Letters need address columns but not every
// one of them.
func (c *RecipientCSV) requiredColumns() []string {
	var required []string
	if c.templateType != TemplateTypeLetter {
		required = append(required, c.recipientColumns()...)
	}
	return append(required, c.placeholders...)
}

// DuplicateColumnHeaders lists headers that appear more than once, by
// normalized name, in upload order.
func (c *RecipientCSV) DuplicateColumnHeaders() []string {
	counts := make(map[string]int, len(c.headers))
	for _, header := range c.headers {
		counts[NormalizeKey(header)]++
	}

	var duplicates []string
	seen := make(map[string]struct{})
	for _, header := range c.headers {
		key := NormalizeKey(header)
		if counts[key] < 2 {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		duplicates = append(duplicates, header)
	}
	return duplicates
}

// MissingColumnHeaders lists required columns absent from the upload.
func (c *RecipientCSV) MissingColumnHeaders() []string {
	present := make(map[string]struct{}, len(c.headers))
	for _, header := range c.headers {
		present[NormalizeKey(header)] = struct{}{}
	}

	var missing []string
	for _, required := range c.requiredColumns() {
		if _, ok := present[NormalizeKey(required)]; !ok {
			missing = append(missing, required)
		}
	}
	if c.templateType == TemplateTypeLetter && !c.hasAnyAddressColumn(present) {
		missing = append(missing, "address line 1")
	}
	return missing
}

func (c *RecipientCSV) hasAnyAddressColumn(present map[string]struct{}) bool {
	for _, column := range letterAddressColumns {
		if _, ok := present[NormalizeKey(column)]; ok {
			return true
		}
	}
	return false
}

// Rows returns every parsed data row.
func (c *RecipientCSV) Rows() []Row {
	return c.rows
}

// RowCount returns the number of data rows.
func (c *RecipientCSV) RowCount() int {
	return len(c.rows)
}

// TooManyRows reports whether the upload was cut off at the row limit.
func (c *RecipientCSV) TooManyRows() bool {
	return c.tooManyRows
}

// RowsWithErrors returns the indexes of rows with any problem.
func (c *RecipientCSV) RowsWithErrors() []int {
	return c.rowIndexes(Row.HasError)
}

// RowsWithBadRecipients returns the indexes of rows whose recipient is
// invalid or not allowed.
func (c *RecipientCSV) RowsWithBadRecipients() []int {
	return c.rowIndexes(Row.HasBadRecipient)
}

// RowsWithMissingData returns the indexes of rows with empty
// placeholder values.
func (c *RecipientCSV) RowsWithMissingData() []int {
	return c.rowIndexes(Row.HasMissingData)
}

func (c *RecipientCSV) rowIndexes(predicate func(Row) bool) []int {
	var indexes []int
	for _, row := range c.rows {
		if predicate(row) {
			indexes = append(indexes, row.Index)
		}
	}
	return indexes
}

// HasErrors reports whether anything blocks sending this upload.
func (c *RecipientCSV) HasErrors() bool {
	return c.tooManyRows ||
		len(c.MissingColumnHeaders()) > 0 ||
		len(c.DuplicateColumnHeaders()) > 0 ||
		len(c.RowsWithErrors()) > 0
}

// TotalFragmentCount sums fragment counts across rows for SMS uploads.
func (c *RecipientCSV) TotalFragmentCount() int {
	total := 0
	for _, row := range c.rows {
		total += row.fragmentCount
	}
	return total
}

func (c *RecipientCSV) buildRow(index int, record []string) Row {
	row := Row{
		Index: index,
		cells: make(map[string]Cell, len(record)),
	}

	used := c.usedColumns()
	values := make(Personalisation, len(record))
	for i, header := range c.headers {
		var value string
		if i < len(record) {
			value = strings.TrimSpace(record[i])
		}
		_, inUse := used[NormalizeKey(header)]
		cell := Cell{Header: header, Value: value, Ignored: !inUse}
		row.cells[NormalizeKey(header)] = cell
		values[header] = value
	}
	row.personalisation = NewColumns(values)

	for _, placeholder := range c.placeholders {
		cell, ok := row.Get(placeholder)
		if !ok || cell.Value == "" {
			row.missingColumns = append(row.missingColumns, placeholder)
			if ok {
				cell.Err = fmt.Errorf("%w: %s", ErrCSVMissingData, placeholder)
				row.cells[NormalizeKey(placeholder)] = cell
			}
		}
	}

	row.recipientErr = c.validateRecipient(&row)

	if c.templateType == TemplateTypeSMS && c.smsContent != "" {
		row.fragmentCount = c.rowFragmentCount(row)
	}
	return row
}

// usedColumns returns the normalized names of every column the template
// consumes: the recipient columns plus the placeholders.
func (c *RecipientCSV) usedColumns() map[string]struct{} {
	used := make(map[string]struct{})
	for _, column := range c.recipientColumns() {
		used[NormalizeKey(column)] = struct{}{}
	}
	for _, placeholder := range c.placeholders {
		used[NormalizeKey(placeholder)] = struct{}{}
	}
	return used
}

// validateRecipient checks the recipient cells for the template type
// and the safelist.
func (c *RecipientCSV) validateRecipient(row *Row) error {
	switch c.templateType {
	case TemplateTypeLetter:
		address := c.rowAddress(*row)
		if err := address.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrBadRecipient, err)
		}
		return nil
	case TemplateTypeSMS:
		return c.validateSingleRecipient(row, "phone number")
	default:
		return c.validateSingleRecipient(row, "email address")
	}
}

func (c *RecipientCSV) validateSingleRecipient(row *Row, column string) error {
	cell, ok := row.Get(column)
	if !ok || cell.Value == "" {
		return fmt.Errorf("%w: missing %s", ErrBadRecipient, column)
	}

	normalized, err := validateRecipientValue(c.templateType, cell.Value)
	if err != nil {
		cell.Err = err
		row.cells[NormalizeKey(column)] = cell
		return fmt.Errorf("%w: %v", ErrBadRecipient, err)
	}

	if len(c.safelist) > 0 {
		if _, ok := c.safelist[normalized]; !ok {
			return fmt.Errorf("%w: %s", ErrNotInSafelist, cell.Value)
		}
	}
	return nil
}

// rowAddress assembles a letter row's address block from its address
// cells.
func (c *RecipientCSV) rowAddress(row Row) PostalAddress {
	var lines []string
	for _, column := range letterAddressColumns {
		if cell, ok := row.Get(column); ok && cell.Value != "" {
			lines = append(lines, cell.Value)
		}
	}
	return PostalAddress{Lines: lines}
}

func (c *RecipientCSV) rowFragmentCount(row Row) int {
	field := NewField(c.smsContent, WithValues(columnsToPersonalisation(row.personalisation)))
	rendered, err := field.Replaced()
	if err != nil {
		rendered = c.smsContent
	}
	return SMSFragmentCount(SanitizeSMS(rendered))
}

func columnsToPersonalisation(columns Columns) Personalisation {
	values := make(Personalisation, columns.Len())
	for _, key := range columns.Keys() {
		if value, ok := columns.Get(key); ok {
			values[key] = value
		}
	}
	return values
}

// validateRecipientValue normalizes one recipient value per channel.
func validateRecipientValue(templateType, value string) (string, error) {
	switch templateType {
	case TemplateTypeSMS:
		return ValidatePhoneNumber(value)
	default:
		email, err := ValidateEmailAddress(value)
		if err != nil {
			return "", err
		}
		return strings.ToLower(email), nil
	}
}

// normalizeRecipient puts a safelist entry in the same form row
// recipients normalize to.
func normalizeRecipient(recipient string) string {
	if normalized, err := ValidatePhoneNumber(recipient); err == nil {
		return normalized
	}
	if normalized, err := ValidateEmailAddress(recipient); err == nil {
		return strings.ToLower(normalized)
	}
	return strings.ToLower(strings.TrimSpace(recipient))
}
