package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vra-io/catalog-client/pkg/vra"
)

// NewResourcesCommand creates the resources command group.
func NewResourcesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "resources",
		Aliases: []string{"resource", "res"},
		Short:   "Manage provisioned resources",
		Long:    "List provisioned resources, inspect them, and run day-two actions",
	}

	cmd.AddCommand(newResourcesListCommand())
	cmd.AddCommand(newResourcesShowCommand())
	cmd.AddCommand(newResourcesActionsCommand())
	cmd.AddCommand(newResourcesRunCommand())
	cmd.AddCommand(newResourcesDestroyCommand())

	return cmd
}

func newResourcesListCommand() *cobra.Command {
	var (
		allPages bool
		limit    int
		filter   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List provisioned resources",
		Long:  "List the provisioned resources the user is entitled to see",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			params := listParams(filter, limit)

			var resources []vra.ResourcePayload

			if allPages {
				resources, err = vra.FetchAllPages[vra.ResourcePayload](ctx, client.Resources(), "", params)
			} else {
				var page *vra.PagedResponse[vra.ResourcePayload]

				page, err = client.Resources().List(ctx, params)
				if page != nil {
					resources = page.Content
				}
			}

			if err != nil {
				return fmt.Errorf("failed to list resources: %w", err)
			}

			return outputResources(resources)
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&limit, "limit", 0, "results per page")
	cmd.Flags().StringVar(&filter, "filter", "", "OData $filter expression")

	return cmd
}

func outputResources(resources []vra.ResourcePayload) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return renderJSON(resources)
	case OutputFormatYAML:
		return renderYAML(resources)
	default:
		return renderResourceTable(resources)
	}
}

func renderResourceTable(resources []vra.ResourcePayload) error {
	if len(resources) == 0 {
		_, _ = os.Stdout.WriteString("No resources found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "ID", "Status", "Type")

	for _, resource := range resources {
		resourceType := NotAvailable
		if resource.ResourceTypeRef != nil {
			resourceType = valueOr(resource.ResourceTypeRef.Label, resource.ResourceTypeRef.ID)
		}

		_ = table.Append(resource.Name, resource.ID,
			valueOr(resource.Status, NotAvailable), resourceType)
	}

	_ = table.Render()
	_, _ = fmt.Fprintf(os.Stdout, "\nShowing %d resources\n", len(resources))

	return nil
}

func newResourcesShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show RESOURCE_ID_OR_NAME",
		Short: "Show resource details",
		Long:  "Show the details of a provisioned resource, looked up by ID or exact name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			resource, err := findResource(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}

			return outputResource(resource)
		},
	}

	return cmd
}

// findResource resolves a resource by ID first, then by exact name.
func findResource(ctx context.Context, client vra.Client, idOrName string) (*vra.Resource, error) {
	resource, err := client.Resources().Get(ctx, idOrName)
	if err == nil {
		return resource, nil
	}

	resource, nameErr := client.Resources().GetByName(ctx, idOrName)
	if nameErr != nil {
		return nil, fmt.Errorf("failed to find resource '%s': %w", idOrName, err)
	}

	return resource, nil
}

func outputResource(resource *vra.Resource) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return renderJSON(resource.Data())
	case OutputFormatYAML:
		return renderYAML(resource.Data())
	default:
		return renderResourceDetails(resource)
	}
}

func renderResourceDetails(resource *vra.Resource) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append("Name", resource.Name())
	_ = table.Append("ID", resource.ID())
	_ = table.Append("Status", valueOr(resource.Status(), NotAvailable))
	_ = table.Append("Description", valueOr(resource.Description(), NotAvailable))
	_ = table.Append("Tenant", valueOr(resource.TenantName(), resource.TenantID()))
	_ = table.Append("Business group", valueOr(resource.SubtenantName(), resource.SubtenantID()))
	_ = table.Append("Owners", valueOr(strings.Join(resource.OwnerNames(), ", "), NotAvailable))

	if item := resource.CatalogItem(); item != nil {
		_ = table.Append("Catalog item", valueOr(item.Label, item.ID))
	}

	if resource.IsVM() {
		_ = table.Append("Machine status", valueOr(resource.MachineStatus(), NotAvailable))

		for _, nic := range resource.NetworkInterfaces() {
			_ = table.Append("Network "+nic.Name,
				fmt.Sprintf("%s (%s)", nic.Address, nic.MACAddress))
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func newResourcesActionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "actions RESOURCE_ID_OR_NAME",
		Short: "List available actions",
		Long:  "List the day-two actions currently available on a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			resource, err := findResource(ctx, client, args[0])
			if err != nil {
				return err
			}

			actions, err := resource.Actions(ctx)
			if err != nil {
				return fmt.Errorf("failed to list actions: %w", err)
			}

			return outputActions(actions)
		},
	}

	return cmd
}

func outputActions(actions []vra.Operation) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return renderJSON(actions)
	case OutputFormatYAML:
		return renderYAML(actions)
	default:
		if len(actions) == 0 {
			_, _ = os.Stdout.WriteString("No actions available\n")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Name", "ID", "Description")

		for _, action := range actions {
			_ = table.Append(action.Name, action.ID,
				valueOr(action.Description, NotAvailable))
		}

		_ = table.Render()

		return nil
	}
}

func newResourcesRunCommand() *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "run RESOURCE_ID_OR_NAME ACTION_NAME",
		Short: "Run an action on a resource",
		Long:  "Submit a day-two action request against a resource. Action names are case sensitive.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			actionName := args[1]
			if actionName == "" {
				return ErrActionNameOrID
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			resource, err := findResource(ctx, client, args[0])
			if err != nil {
				return err
			}

			actionID, err := resource.ActionIDByName(ctx, actionName)
			if err != nil {
				return fmt.Errorf("failed to look up action: %w", err)
			}

			if actionID == "" {
				return fmt.Errorf("action '%s' on resource '%s': %w",
					actionName, resource.Name(), vra.ErrActionNotFound)
			}

			request, err := resource.SubmitActionRequest(ctx, actionID)
			if err != nil {
				return fmt.Errorf("failed to submit action request: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Submitted '%s' on '%s' (request: %s)\n",
				actionName, resource.Name(), request.ID)

			if wait {
				return waitForRequest(ctx, client, request.ID)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Track with: vra requests show %s\n", request.ID)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "wait for the request to complete")

	return cmd
}

func newResourcesDestroyCommand() *cobra.Command {
	var (
		force bool
		wait  bool
	)

	cmd := &cobra.Command{
		Use:   "destroy RESOURCE_ID_OR_NAME",
		Short: "Destroy a resource",
		Long:  "Submit the destroy action against a provisioned resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			resource, err := findResource(ctx, client, args[0])
			if err != nil {
				return err
			}

			if !force {
				_, _ = fmt.Fprintf(os.Stdout, "Really destroy resource '%s'? (y/N): ", resource.Name())

				var response string

				_, _ = fmt.Scanln(&response)
				if response != "y" && response != "Y" {
					_, _ = os.Stdout.WriteString("Cancelled\n")

					return nil
				}
			}

			request, err := resource.Destroy(ctx)
			if err != nil {
				return fmt.Errorf("failed to destroy resource: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Destroying '%s' (request: %s)\n", resource.Name(), request.ID)

			if wait {
				return waitForRequest(ctx, client, request.ID)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Track with: vra requests show %s\n", request.ID)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")
	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "wait for the request to complete")

	return cmd
}

// waitForRequest polls a request until it finishes and reports the outcome.
func waitForRequest(ctx context.Context, client vra.Client, requestID string) error {
	_, _ = fmt.Fprintf(os.Stdout, "Waiting for request %s...\n", requestID)

	request, err := client.Requests().PollUntilComplete(ctx, requestID)
	if err != nil {
		return fmt.Errorf("waiting for request: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Request %s finished: %s\n", request.ID, request.State)

	if details := request.CompletionDetails(); details != "" {
		_, _ = fmt.Fprintf(os.Stdout, "  %s\n", details)
	}

	return nil
}
