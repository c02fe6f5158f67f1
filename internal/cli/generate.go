package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tacogips/octavia/internal/app"
	"github.com/tacogips/octavia/internal/definition"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a YAML configuration for a source, destination or connection",
	Long: `Render an editable configuration.yaml into the project.

Sources and destinations are rendered from a connector definition file
(JSON or YAML) that carries the connector's specification. Connections
link a rendered source and destination and embed the source catalog.`,
}

var generateSourceCmd = &cobra.Command{
	Use:   "source <definition-file> <resource-name>",
	Short: "Generate a source configuration",
	Long: `Render sources/<resource-name>/configuration.yaml from a source definition.

Examples:
  octavia generate source ./definitions/postgres.json my_postgres
  octavia generate source ./definitions/pokeapi.yaml pokemon --force`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerateConnector(cmd, definition.TypeSource, args[0], args[1])
	},
}

var generateDestinationCmd = &cobra.Command{
	Use:   "destination <definition-file> <resource-name>",
	Short: "Generate a destination configuration",
	Long: `Render destinations/<resource-name>/configuration.yaml from a destination definition.

Examples:
  octavia generate destination ./definitions/bigquery.json warehouse`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerateConnector(cmd, definition.TypeDestination, args[0], args[1])
	},
}

var generateConnectionCmd = &cobra.Command{
	Use:   "connection <connection-name>",
	Short: "Generate a connection configuration",
	Long: `Render connections/<connection-name>/configuration.yaml linking a
source and a destination already rendered in the project.

Examples:
  octavia generate connection poke_to_pg \
    --source sources/pokemon/configuration.yaml \
    --destination destinations/warehouse/configuration.yaml \
    --catalog ./pokemon_catalog.json \
    --destination-definition ./definitions/postgres.json`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerateConnection,
}

// Generate command flags
var (
	generateForce                 bool
	generateSource                string
	generateDestination           string
	generateCatalog               string
	generateDestinationDefinition string
)

func init() {
	generateCmd.PersistentFlags().BoolVarP(&generateForce, FlagForce, "f", false, DescForce)

	generateConnectionCmd.Flags().StringVar(&generateSource, FlagSource, "", DescSource)
	generateConnectionCmd.Flags().StringVar(&generateDestination, FlagDestination, "", DescDestination)
	generateConnectionCmd.Flags().StringVar(&generateCatalog, FlagCatalog, "", DescCatalog)
	generateConnectionCmd.Flags().StringVar(&generateDestinationDefinition, FlagDestinationDefinition, "", DescDestinationDefinition)
	_ = generateConnectionCmd.MarkFlagRequired(FlagSource)
	_ = generateConnectionCmd.MarkFlagRequired(FlagDestination)
	_ = generateConnectionCmd.MarkFlagRequired(FlagCatalog)

	generateCmd.AddCommand(generateSourceCmd)
	generateCmd.AddCommand(generateDestinationCmd)
	generateCmd.AddCommand(generateConnectionCmd)
}

func runGenerateConnector(cmd *cobra.Command, definitionType, definitionPath, resourceName string) error {
	printInfo(fmt.Sprintf("Rendering %s %s from %s", definitionType, resourceName, definitionPath))

	result, err := app.GenerateConnector(cmd.Context(), app.GenerateConnectorOptions{
		ProjectPath:    projectPath,
		DefinitionType: definitionType,
		DefinitionPath: definitionPath,
		ResourceName:   resourceName,
		Force:          generateForce,
		Confirm:        overwriteConfirm(generateForce),
	})
	if err != nil {
		printErrorMsg(fmt.Sprintf("Generate %s failed", definitionType))
		return err
	}

	printGenerateResult(result)
	return nil
}

func runGenerateConnection(cmd *cobra.Command, args []string) error {
	name := args[0]
	printInfo(fmt.Sprintf("Rendering connection %s", name))

	result, err := app.GenerateConnection(cmd.Context(), app.GenerateConnectionOptions{
		ProjectPath:               projectPath,
		ConnectionName:            name,
		SourcePath:                generateSource,
		DestinationPath:           generateDestination,
		CatalogPath:               generateCatalog,
		DestinationDefinitionPath: generateDestinationDefinition,
		Force:                     generateForce,
		Confirm:                   overwriteConfirm(generateForce),
	})
	if err != nil {
		printErrorMsg("Generate connection failed")
		return err
	}

	if generateDestinationDefinition == "" {
		printWarning("No destination definition given, normalization and dbt operations are omitted")
	}
	printGenerateResult(result)
	return nil
}
