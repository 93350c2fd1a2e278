/*
Package cmd provides the CLI for the Outlook draft mailer.
*/
package cmd

import (
	"context"
	"os"
	"time"

	"outlook-draft-mailer/internal/auditlog"
	"outlook-draft-mailer/internal/config"
	"outlook-draft-mailer/internal/contacts"
	"outlook-draft-mailer/internal/graph"
	"outlook-draft-mailer/internal/logging"
	"outlook-draft-mailer/internal/personalize"
	"outlook-draft-mailer/internal/pipeline"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile       string
	contactsFile  string
	sheet         string
	fromName      string
	fromEmail     string
	delayMS       int
	logCSV        string
	aiPersonalize bool
	clientID      string
	cacheFile     string
)

var rootCmd = &cobra.Command{
	Use:   "outlook-draft-mailer",
	Short: "Create Outlook drafts from a contact spreadsheet",
	Long: `outlook-draft-mailer reads a contact spreadsheet and creates one
personalized Outlook draft per contact through the Microsoft Graph API,
authenticating as the signed-in user via the device-code flow.

Drafts are never sent: they land in the mailbox's Drafts folder for review.
Every processed contact is recorded in a CSV audit log.`,
	SilenceUsage: true,
	Run:          run,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "YAML config file with templates and endpoints")
	rootCmd.Flags().StringVar(&contactsFile, "contacts", "", "contact spreadsheet path (.xlsx or .csv)")
	rootCmd.Flags().StringVar(&sheet, "sheet", "", "worksheet name (xlsx input only)")
	rootCmd.Flags().StringVar(&fromName, "from-name", "", "sender display name")
	rootCmd.Flags().StringVar(&fromEmail, "from-email", "", "sender email address")
	rootCmd.Flags().IntVar(&delayMS, "delay-ms", 1000, "delay between drafts in milliseconds")
	rootCmd.Flags().StringVar(&logCSV, "log-csv", "", "CSV audit log path")
	rootCmd.Flags().BoolVar(&aiPersonalize, "ai-personalize", false, "append an AI-personalized sentence to each body")
	rootCmd.Flags().StringVar(&clientID, "client-id", "", "Azure AD application (client) ID; falls back to CLIENT_ID")
	rootCmd.Flags().StringVar(&cacheFile, "cache", "", "token cache file path (default token_cache.bin)")

	_ = rootCmd.MarkFlagRequired("contacts")
	_ = rootCmd.MarkFlagRequired("log-csv")
}

func run(cmd *cobra.Command, args []string) {
	// .env supplies OPENAI_API_KEY and optionally CLIENT_ID
	_ = godotenv.Load()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		logging.Log.Errorf("Error reading configuration file: %v", err)
		return
	}
	if cacheFile != "" {
		cfg.Auth.CacheFile = cacheFile
	}

	if clientID == "" {
		clientID = os.Getenv("CLIENT_ID")
	}
	if clientID == "" {
		logging.Log.Error("No client ID provided (use --client-id or CLIENT_ID)")
		return
	}

	contactList, err := contacts.Load(contactsFile, sheet)
	if err != nil {
		logging.Log.Errorf("Error reading contact file: %v", err)
		return
	}
	logging.Log.Infof("Loaded %d contacts from %s", len(contactList), contactsFile)

	ctx := context.Background()

	credentials := graph.NewCredentials(clientID, cfg.Auth)
	if !credentials.Authenticate(ctx) {
		logging.Log.Error("Authentication failed. Exiting.")
		return
	}
	logging.Log.Info("Authentication successful")

	if fromName != "" || fromEmail != "" {
		logging.Log.Infof("Creating drafts as %s <%s>", fromName, fromEmail)
	}

	var personalizer pipeline.Personalizer
	if aiPersonalize {
		personalizer = personalize.New(cfg.OpenAI, os.Getenv("OPENAI_API_KEY"))
	}

	runner := pipeline.NewRunner(
		graph.NewDrafts(cfg.Graph.Endpoint),
		personalizer,
		auditlog.NewWriter(logCSV),
		cfg.Templates,
		time.Duration(delayMS)*time.Millisecond,
	)
	runner.Run(ctx, credentials.Token(), contactList)

	logging.Log.Infof("Processing complete! Check '%s' for results.", logCSV)
}
