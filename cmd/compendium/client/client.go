// Package client provides commands that call the catalog gRPC service
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	"github.com/KirkDiggler/steel-compendium/internal/errors"
	v1alpha1 "github.com/KirkDiggler/steel-compendium/internal/handlers/compendium/v1alpha1"
)

var (
	serverAddr string
	timeout    time.Duration
	jsonOutput bool
)

// ClientCmd is the root command for the catalog client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Call a running catalog service",
	Long:  `Client commands make gRPC requests against a running compendium serve.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "request timeout")
	ClientCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print the raw response as JSON")

	ClientCmd.AddCommand(getAbilityCmd)
	ClientCmd.AddCommand(listAbilitiesCmd)
	ClientCmd.AddCommand(getFeatureCmd)
	ClientCmd.AddCommand(rollCmd)
}

// createCatalogClient connects to the server
func createCatalogClient() (v1alpha1.CatalogServiceClient, func(), error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	cleanup := func() {
		_ = conn.Close()
	}

	return v1alpha1.NewCatalogServiceClient(conn), cleanup, nil
}

// call runs fn against a fresh client with the request timeout
func call(parent context.Context, fn func(ctx context.Context, client v1alpha1.CatalogServiceClient) error) error {
	client, cleanup, err := createCatalogClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	if err := fn(ctx, client); err != nil {
		return errors.FromGRPCError(err)
	}
	return nil
}

func printJSON(cmd *cobra.Command, msg proto.Message) error {
	marshaler := protojson.MarshalOptions{
		Indent:          "  ",
		EmitUnpopulated: false,
	}
	data, err := marshaler.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal response to JSON: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
