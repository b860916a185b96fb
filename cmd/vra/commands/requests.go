package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vra-io/catalog-client/pkg/vra"
)

// NewRequestsCommand creates the requests command group.
func NewRequestsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "requests",
		Aliases: []string{"request", "req"},
		Short:   "Manage catalog requests",
		Long:    "List catalog requests, inspect them, and wait for completion",
	}

	cmd.AddCommand(newRequestsListCommand())
	cmd.AddCommand(newRequestsShowCommand())
	cmd.AddCommand(newRequestsWatchCommand())

	return cmd
}

func newRequestsListCommand() *cobra.Command {
	var (
		allPages bool
		limit    int
		filter   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog requests",
		Long:  "List the catalog requests visible to the user",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			params := listParams(filter, limit)

			var requests []vra.Request

			if allPages {
				requests, err = vra.FetchAllPages[vra.Request](ctx, client.Requests(), "", params)
			} else {
				var page *vra.PagedResponse[vra.Request]

				page, err = client.Requests().List(ctx, params)
				if page != nil {
					requests = page.Content
				}
			}

			if err != nil {
				return fmt.Errorf("failed to list requests: %w", err)
			}

			return outputRequests(requests)
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&limit, "limit", 0, "results per page")
	cmd.Flags().StringVar(&filter, "filter", "", "OData $filter expression")

	return cmd
}

func outputRequests(requests []vra.Request) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return renderJSON(requests)
	case OutputFormatYAML:
		return renderYAML(requests)
	default:
		return renderRequestTable(requests)
	}
}

func renderRequestTable(requests []vra.Request) error {
	if len(requests) == 0 {
		_, _ = os.Stdout.WriteString("No requests found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Number", "ID", "State", "Item", "Requested by", "Created")

	for _, request := range requests {
		item := NotAvailable
		if request.CatalogItemRef != nil {
			item = valueOr(request.CatalogItemRef.Label, request.CatalogItemRef.ID)
		}

		created := NotAvailable
		if request.DateCreated != nil {
			created = request.DateCreated.Format(time.RFC3339)
		}

		_ = table.Append(fmt.Sprintf("%d", request.RequestNumber), request.ID,
			request.State, item, valueOr(request.RequestedBy, NotAvailable), created)
	}

	_ = table.Render()

	return nil
}

func newRequestsShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show REQUEST_ID",
		Short: "Show request details",
		Long:  "Show the state and outcome of a catalog request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			request, err := client.Requests().Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get request: %w", err)
			}

			return outputRequest(request)
		},
	}

	return cmd
}

func outputRequest(request *vra.Request) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return renderJSON(request)
	case OutputFormatYAML:
		return renderYAML(request)
	default:
		return renderRequestDetails(request)
	}
}

func renderRequestDetails(request *vra.Request) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append("ID", request.ID)
	_ = table.Append("Number", fmt.Sprintf("%d", request.RequestNumber))
	_ = table.Append("State", request.State)
	_ = table.Append("Requested by", valueOr(request.RequestedBy, NotAvailable))
	_ = table.Append("Requested for", valueOr(request.RequestedFor, NotAvailable))

	if request.CatalogItemRef != nil {
		_ = table.Append("Catalog item", valueOr(request.CatalogItemRef.Label, request.CatalogItemRef.ID))
	}

	if request.DateCreated != nil {
		_ = table.Append("Created", request.DateCreated.Format(time.RFC3339))
	}

	if request.DateCompleted != nil {
		_ = table.Append("Completed", request.DateCompleted.Format(time.RFC3339))
	}

	if details := request.CompletionDetails(); details != "" {
		_ = table.Append("Details", details)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func newRequestsWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch REQUEST_ID",
		Short: "Wait for a request to finish",
		Long:  "Poll a catalog request until it reaches a terminal state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			return waitForRequest(cmd.Context(), client, args[0])
		},
	}

	return cmd
}
