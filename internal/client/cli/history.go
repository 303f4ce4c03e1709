package cli

import (
	"context"
	"fmt"
	"sort"
	"text/tabwriter"
	"time"
)

func (a *App) list(ctx context.Context) error {
	entries, err := a.history.List(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.stdout, "No resources created yet")
		return nil
	}

	w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tURI\tVERSION\tCREATED")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.Name, e.URI, e.APIVersion, e.Created.Local().Format(time.DateTime))
	}
	return w.Flush()
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
