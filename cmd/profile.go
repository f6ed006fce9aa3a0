package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nekoflow/nekodev/internal/store"
)

var profileNote string

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage named device profiles",
	Long: `Profiles save a device config (backend, device selection and precision)
under a name so later runs can use --profile instead of --device.`,
}

var saveProfileCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save the current --device config as a profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runSaveProfile,
}

var listProfilesCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved profiles",
	RunE:  runListProfiles,
}

var showProfileCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a profile as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runShowProfile,
}

var deleteProfileCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeleteProfile,
}

func init() {
	rootCmd.AddCommand(profileCmd)

	profileCmd.AddCommand(saveProfileCmd)
	profileCmd.AddCommand(listProfilesCmd)
	profileCmd.AddCommand(showProfileCmd)
	profileCmd.AddCommand(deleteProfileCmd)

	saveProfileCmd.Flags().StringVar(&profileNote, "note", "", "Free-form description")
}

func openStore() (*store.FSStore, error) {
	s, err := store.NewFSStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile store: %w", err)
	}
	return s, nil
}

func runSaveProfile(cmd *cobra.Command, args []string) error {
	cfg, err := flagConfig()
	if err != nil {
		return err
	}
	profileStore, err := openStore()
	if err != nil {
		return err
	}

	p := &store.Profile{Name: args[0], Config: cfg, Note: profileNote}
	if err := profileStore.SaveProfile(p); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved profile %s: %s\n", p.Name, p.Config)
	return nil
}

func runListProfiles(cmd *cobra.Command, args []string) error {
	profileStore, err := openStore()
	if err != nil {
		return err
	}
	profiles, err := profileStore.ListProfiles()
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(profiles) == 0 {
		fmt.Fprintln(out, "No profiles found.")
		return nil
	}

	table := newTable("Name", "Config", "Updated", "Note")
	for _, p := range profiles {
		table.Row(p.Name, p.Config.String(), p.UpdatedAt.Local().Format("2006-01-02 15:04:05"), p.Note)
	}
	fmt.Fprintln(out, table.String())
	fmt.Fprintf(out, "\nTotal profiles: %d\n", len(profiles))
	return nil
}

func runShowProfile(cmd *cobra.Command, args []string) error {
	profileStore, err := openStore()
	if err != nil {
		return err
	}
	p, err := profileStore.LoadProfile(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

func runDeleteProfile(cmd *cobra.Command, args []string) error {
	profileStore, err := openStore()
	if err != nil {
		return err
	}
	if err := profileStore.DeleteProfile(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted profile %s\n", args[0])
	return nil
}
