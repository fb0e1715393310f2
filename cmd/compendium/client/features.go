package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/wrapperspb"

	v1alpha1 "github.com/KirkDiggler/steel-compendium/internal/handlers/compendium/v1alpha1"
)

var getFeatureCmd = &cobra.Command{
	Use:   "get-feature ID",
	Short: "Get one feature and its embedded abilities",
	Args:  cobra.ExactArgs(1),
	RunE:  runGetFeature,
}

func runGetFeature(cmd *cobra.Command, args []string) error {
	return call(cmd.Context(), func(ctx context.Context, client v1alpha1.CatalogServiceClient) error {
		resp, err := client.GetFeature(ctx, wrapperspb.String(args[0]))
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd, resp)
		}

		feature, err := v1alpha1.DecodeFeature(resp)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s (%s, %s level %d)\n", feature.Name, feature.Kind, feature.Class, feature.Level)
		if feature.Description != "" {
			fmt.Fprintf(w, "\n%s\n", feature.Description)
		}
		for _, ability := range feature.Abilities {
			fmt.Fprintln(w)
			printAbility(w, ability)
		}
		return nil
	})
}
