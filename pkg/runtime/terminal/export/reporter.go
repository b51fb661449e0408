package export

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/de-tools/solar-atlas/pkg/models/domain"
	"github.com/de-tools/solar-atlas/pkg/services/report"
)

const dateLayout = "2006-01-02"

// Reporter prints project data and delivery results to the console.
type Reporter struct {
	writer    io.Writer
	formatter report.Formatter
}

func NewReporter(writer io.Writer, formatter report.Formatter) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer:    writer,
		formatter: formatter,
	}
}

func (c *Reporter) Projects(projects []domain.Project) error {
	if len(projects) == 0 {
		_, err := fmt.Fprintln(c.writer, "No projects found.")
		return err
	}

	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		due := ""
		if !p.DueDate.IsZero() {
			due = p.DueDate.Format(dateLayout)
		}
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.Customer,
			string(p.Status),
			c.formatter.Percent(p.Progress),
			c.formatter.Currency(p.Revenue),
			due,
		})
	}

	return c.table([]string{"ID", "Name", "Customer", "Status", "Progress", "Revenue", "Due"}, rows)
}

func (c *Reporter) Customers(customers []domain.Customer) error {
	if len(customers) == 0 {
		_, err := fmt.Fprintln(c.writer, "No customers found.")
		return err
	}

	rows := make([][]string, 0, len(customers))
	for _, cu := range customers {
		rows = append(rows, []string{
			strconv.FormatInt(cu.ID, 10),
			cu.Name,
			cu.ContactPerson,
			cu.Email,
			cu.Industry,
		})
	}

	return c.table([]string{"ID", "Name", "Contact", "Email", "Industry"}, rows)
}

type delivery struct {
	Doc       *domain.GeneratedDocument
	Locations []string
	Size      string
}

const deliveredTemplate = `Report {{.Doc.ID}} generated ({{.Doc.Format}}, {{.Size}})
{{range .Locations}}  -> {{.}}
{{end}}`

// Delivered lists where a generated document was stored.
func (c *Reporter) Delivered(doc *domain.GeneratedDocument, locations ...string) error {
	t, err := template.New("delivered").Parse(deliveredTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, delivery{
		Doc:       doc,
		Locations: locations,
		Size:      byteSize(len(doc.Content)),
	})
}

// Notify prints a notification the way the dashboard would toast it.
func (c *Reporter) Notify(n domain.Notification) error {
	if !n.Open {
		return nil
	}
	style := lipgloss.NewStyle().Foreground(severityColors[n.Severity])
	_, err := fmt.Fprintln(c.writer, style.Render(n.Message))
	return err
}

var severityColors = map[domain.Severity]lipgloss.Color{
	domain.SeverityInfo:    lipgloss.Color("63"),
	domain.SeveritySuccess: lipgloss.Color("42"),
	domain.SeverityWarning: lipgloss.Color("214"),
	domain.SeverityError:   lipgloss.Color("196"),
}

func (c *Reporter) table(headers []string, rows [][]string) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)

	_, err := fmt.Fprintln(c.writer, t.String())
	return err
}

func byteSize(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.1f KiB", float64(n)/unit)
}
