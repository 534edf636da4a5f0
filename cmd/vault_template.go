package cmd

import (
	"fmt"
	"path/filepath"
	"sort"

	"opsvault/internal/configs"
	"opsvault/internal/storage"
	"opsvault/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	templateTo      string
	templateCc      string
	templateSubject string
	templateBody    string
)

func init() {
	templateSetCmd.Flags().StringVar(&templateTo, "to", "", "recipient line")
	templateSetCmd.Flags().StringVar(&templateCc, "cc", "", "cc line")
	templateSetCmd.Flags().StringVar(&templateSubject, "subject", "", "subject line")
	templateSetCmd.Flags().StringVar(&templateBody, "body", "", "message body")

	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateSetCmd)
	VaultCmd.AddCommand(templateCmd)
}

func resetTemplateCommandState() {
	templateTo = ""
	templateCc = ""
	templateSubject = ""
	templateBody = ""
}

func templatesPath() string {
	return filepath.Join(configs.UserVaultSettings.ConfigPath, storage.TemplatesFile)
}

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage email templates",
	Long: `Email templates are outgoing-mail skeletons keyed by type. Built-in
types are offer, first_day, background_check, uniform_pickup, and
neo_reminder; custom types use a custom- prefix. Templates are stored
as plaintext configuration, not inside the encrypted store.`,
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting template list command")

		templates := configs.LoadTemplates(templatesPath())
		if len(templates.Templates) == 0 {
			fmt.Println(ui.Muted.Sprint("no templates configured"))
			return nil
		}
		keys := make([]string, 0, len(templates.Templates))
		for key := range templates.Templates {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			template := templates.Templates[key]
			fmt.Printf("%s %s\n", ui.Highlight.Sprint(key), ui.Muted.Sprint(template.Subject))
		}
		return nil
	},
}

var templateSetCmd = &cobra.Command{
	Use:   "set <type>",
	Short: "Create or replace a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting template set command for %s", args[0])

		path := templatesPath()
		templates := configs.LoadTemplates(path)
		err := templates.SetTemplate(args[0], configs.EmailTemplate{
			To:      templateTo,
			Cc:      templateCc,
			Subject: templateSubject,
			Body:    templateBody,
		})
		if err != nil {
			fmt.Println(color.RedString("✗") + " " + err.Error())
			return nil
		}
		if err := configs.SaveTemplates(path, templates); err != nil {
			return Logger.ErrorfAndReturn("failed to save templates: %v", err)
		}

		fmt.Println(color.GreenString("✓") + " Template " + color.CyanString("'"+args[0]+"'") + " saved")
		return nil
	},
}
