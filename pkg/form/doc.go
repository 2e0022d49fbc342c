// Package form owns the interactive state of one rendered form.
//
// A Controller holds the field list, the compiled rule sets and the FormState
// (values, errors, loading and submitting flags). Renderers read immutable
// snapshots; all mutation goes through the controller's handlers:
//
//	ctrl := form.New(form.WithSubmitter(client), form.WithNotifier(toasts))
//	if err := ctrl.LoadFields(ctx, client); err != nil { ... }
//	ctrl.Change("email", "a@b.com")
//	payload, err := ctrl.Submit(ctx)
//
// Validation runs on every change. Submit validates every field first and
// never calls the Submitter while any field has an error.
package form
