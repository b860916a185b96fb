package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vra-io/catalog-client/pkg/vra"
)

// NewCatalogCommand creates the catalog command group.
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse and request catalog items",
		Long:  "List entitled catalog items, inspect them, and submit provisioning requests",
	}

	cmd.AddCommand(newCatalogListCommand())
	cmd.AddCommand(newCatalogShowCommand())
	cmd.AddCommand(newCatalogRequestCommand())

	return cmd
}

func newCatalogListCommand() *cobra.Command {
	var (
		allPages bool
		limit    int
		filter   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entitled catalog items",
		Long:  "List the catalog items the user is entitled to request",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			params := listParams(filter, limit)

			var items []vra.EntitledCatalogItem

			if allPages {
				items, err = vra.FetchAllPages[vra.EntitledCatalogItem](ctx, client.CatalogItems(), "", params)
			} else {
				var page *vra.PagedResponse[vra.EntitledCatalogItem]

				page, err = client.CatalogItems().List(ctx, params)
				if page != nil {
					items = page.Content
				}
			}

			if err != nil {
				return fmt.Errorf("failed to list catalog items: %w", err)
			}

			return outputCatalogItems(items)
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&limit, "limit", 0, "results per page")
	cmd.Flags().StringVar(&filter, "filter", "", "OData $filter expression")

	return cmd
}

func outputCatalogItems(items []vra.EntitledCatalogItem) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return renderJSON(items)
	case OutputFormatYAML:
		return renderYAML(items)
	default:
		return renderCatalogItemTable(items)
	}
}

func renderCatalogItemTable(items []vra.EntitledCatalogItem) error {
	if len(items) == 0 {
		_, _ = os.Stdout.WriteString("No entitled catalog items found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "ID", "Status", "Service")

	for _, entitled := range items {
		item := entitled.CatalogItem

		service := NotAvailable
		if item.ServiceRef != nil {
			service = valueOr(item.ServiceRef.Label, item.ServiceRef.ID)
		}

		_ = table.Append(item.Name, item.ID, valueOr(item.Status, NotAvailable), service)
	}

	_ = table.Render()

	return nil
}

func newCatalogShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show CATALOG_ITEM_ID",
		Short: "Show catalog item details",
		Long:  "Show the details of one catalog item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			item, err := client.CatalogItems().Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get catalog item: %w", err)
			}

			return outputCatalogItem(item)
		},
	}

	return cmd
}

func outputCatalogItem(item *vra.CatalogItem) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return renderJSON(item)
	case OutputFormatYAML:
		return renderYAML(item)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")

		_ = table.Append("Name", item.Name)
		_ = table.Append("ID", item.ID)
		_ = table.Append("Status", valueOr(item.Status, NotAvailable))
		_ = table.Append("Description", valueOr(item.Description, NotAvailable))

		if item.ServiceRef != nil {
			_ = table.Append("Service", valueOr(item.ServiceRef.Label, item.ServiceRef.ID))
		}

		if item.OutputResourceTypeRef != nil {
			_ = table.Append("Output type", valueOr(item.OutputResourceTypeRef.Label, item.OutputResourceTypeRef.ID))
		}

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

func newCatalogRequestCommand() *cobra.Command {
	var (
		description  string
		reasons      string
		requestedFor string
		parameters   map[string]string
		wait         bool
	)

	cmd := &cobra.Command{
		Use:   "request CATALOG_ITEM_ID",
		Short: "Request a catalog item",
		Long:  "Submit a provisioning request for an entitled catalog item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			item, err := client.CatalogItems().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get catalog item: %w", err)
			}

			itemRequest := vra.NewCatalogItemRequest(item)
			itemRequest.Description = description
			itemRequest.Reasons = reasons
			itemRequest.RequestedFor = requestedFor

			for key, value := range parameters {
				itemRequest.SetParameter(key, vra.StringLiteral(value))
			}

			request, err := client.CatalogItems().Request(ctx, itemRequest)
			if err != nil {
				return fmt.Errorf("failed to request catalog item: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Requested '%s' (request: %s)\n", item.Name, request.ID)

			if wait {
				return waitForRequest(ctx, client, request.ID)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Track with: vra requests show %s\n", request.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "request description")
	cmd.Flags().StringVar(&reasons, "reasons", "", "reasons for the request")
	cmd.Flags().StringVar(&requestedFor, "for", "", "principal the item is requested for")
	cmd.Flags().StringToStringVar(&parameters, "param", nil, "provisioning parameters (key=value)")
	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "wait for the request to complete")

	return cmd
}
