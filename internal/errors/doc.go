// Package errors provides structured errors for the compendium.
//
// Errors carry a Code, a message, an optional cause and metadata:
//
//	err := errors.NotFoundf("ability %s not found", id).WithMeta("id", id)
//
// Wrapping keeps the code of the wrapped error:
//
//	if err := repo.Get(ctx, id); err != nil {
//	    return errors.Wrap(err, "failed to get ability")
//	}
//
// # Document failures
//
// Reading a rules tree produces document-level failures (Unreadable,
// MissingFrontMatter, EmptyDocument). IsSkippable reports them so a batch can
// log the document, count it as skipped and keep going. Anything else aborts
// the batch.
//
// # gRPC
//
// Handlers return ToGRPCError(err). The code is carried in an
// errdetails.ErrorInfo detail and FromGRPCError restores it on the client.
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("rules_dir", cfg.RulesDir, vb)
//	errors.ValidateRange("workers", cfg.Workers, 1, 64, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
package errors
