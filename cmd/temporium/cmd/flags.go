package cmd

import (
	"github.com/spf13/cobra"

	"github.com/DrMaserLie/temporium/pkg/catalog"
)

// addFilterFlags registers the shared catalog filter flags used by
// list and export.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("genre", "", "Filter: exact genre")
	cmd.Flags().Bool("completed", false, "Filter: completed games only")
	cmd.Flags().Bool("uncompleted", false, "Filter: uncompleted games only")
	cmd.Flags().Bool("favorite", false, "Filter: favorites only")
	cmd.Flags().Bool("installed", false, "Filter: installed games only")
	cmd.Flags().String("tag", "", "Filter: games carrying this tag")
	cmd.Flags().Int32("rating-min", -1, "Filter: minimum rating (0-10)")
	cmd.Flags().Int32("rating-max", -1, "Filter: maximum rating (0-10)")
	cmd.Flags().Float64("disk-min", -1, "Filter: minimum disk space (GB)")
	cmd.Flags().Float64("disk-max", -1, "Filter: maximum disk space (GB)")
}

// filterFromFlags builds a catalog filter from the shared flags,
// returning nil when no filter flag was set.
func filterFromFlags(cmd *cobra.Command) *catalog.Filter {
	f := &catalog.Filter{}

	if cmd.Flags().Changed("genre") {
		genre, _ := cmd.Flags().GetString("genre")
		f.Genre = &genre
	}
	if cmd.Flags().Changed("completed") {
		v := true
		f.Completed = &v
	}
	if cmd.Flags().Changed("uncompleted") {
		v := false
		f.Completed = &v
	}
	if cmd.Flags().Changed("favorite") {
		v := true
		f.Favorite = &v
	}
	if cmd.Flags().Changed("installed") {
		v := true
		f.Installed = &v
	}
	if cmd.Flags().Changed("tag") {
		tag, _ := cmd.Flags().GetString("tag")
		f.Tag = &tag
	}
	if cmd.Flags().Changed("rating-min") {
		v, _ := cmd.Flags().GetInt32("rating-min")
		f.RatingMin = &v
	}
	if cmd.Flags().Changed("rating-max") {
		v, _ := cmd.Flags().GetInt32("rating-max")
		f.RatingMax = &v
	}
	if cmd.Flags().Changed("disk-min") {
		v, _ := cmd.Flags().GetFloat64("disk-min")
		f.DiskSpaceMin = &v
	}
	if cmd.Flags().Changed("disk-max") {
		v, _ := cmd.Flags().GetFloat64("disk-max")
		f.DiskSpaceMax = &v
	}

	if f.IsZero() {
		return nil
	}
	return f
}
