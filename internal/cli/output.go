package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/five82/repolist/internal/api"
	"github.com/five82/repolist/internal/ui"
)

// printRepositories writes records as an aligned table, or as a JSON array
// when asJSON is set.
func printRepositories(w io.Writer, records []api.Repository, locale string, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if records == nil {
			records = []api.Repository{}
		}
		return enc.Encode(records)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tURL\tTECHS\tLIKES")
	for _, r := range records {
		techs := strings.Join(r.Techs, ",")
		if techs == "" {
			techs = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Title, r.URL, techs, ui.LikesLabel(r.Likes, locale))
	}
	return tw.Flush()
}
