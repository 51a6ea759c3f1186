package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/eventify/eventify-web/internal/auth"
	"github.com/eventify/eventify-web/internal/routes"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the route tree with the roles allowed on each view",
	RunE: func(cmd *cobra.Command, args []string) error {
		tree := routes.Default()

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tVIEW\tACCESS")
		for _, r := range tree.All() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Method, r.Pattern, r.View, r.Access)
		}
		for _, st := range tree.Subtrees {
			fmt.Fprintf(w, "*\t%s/*\t%q\tpublic\n", st.Prefix, st.NotFound)
		}
		fmt.Fprintf(w, "*\t/*\t%q\tpublic\n", tree.NotFound)
		return w.Flush()
	},
}

var navCmd = &cobra.Command{
	Use:   "nav",
	Short: "Print the navigation links of a role",
	Long: `Print the navigation links shown to a role. Without --role the
links for visitors who are not logged in are printed.

Examples:
  eventify nav
  eventify nav --role organizer`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("role")

		links := auth.PublicNavLinks()
		if name != "" {
			role, err := auth.ParseRole(name)
			if err != nil {
				return err
			}
			links = auth.NavLinks(role)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		for _, l := range links {
			fmt.Fprintf(w, "%s\t%s\n", l.Label, l.Path)
		}
		return w.Flush()
	},
}

func init() {
	navCmd.Flags().String("role", "", "role: user, organizer or admin")

	rootCmd.AddCommand(routesCmd, navCmd)
}
