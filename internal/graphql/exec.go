package graphql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// Execute validates query against Schema, runs the selected operation's
// top-level fields in document order and returns the data keyed by response
// name. Only the selected sub-fields are kept.
func (r *Resolver) Execute(ctx context.Context, query, operationName string, variables map[string]any) (map[string]any, gqlerror.List) {
	doc, errs := gqlparser.LoadQuery(Schema, query)
	if len(errs) > 0 {
		return nil, errs
	}

	op := doc.Operations.ForName(operationName)
	if op == nil {
		if operationName == "" {
			return nil, gqlerror.List{gqlerror.Errorf("operationName is required when the document has several operations")}
		}
		return nil, gqlerror.List{gqlerror.Errorf("unknown operation %q", operationName)}
	}
	if op.Operation == ast.Subscription {
		return nil, gqlerror.List{gqlerror.Errorf("subscriptions are not supported")}
	}

	data := make(map[string]any, len(op.SelectionSet))
	for _, sel := range op.SelectionSet {
		field, ok := sel.(*ast.Field)
		if !ok {
			return nil, gqlerror.List{gqlerror.Errorf("fragments are not supported at the operation level")}
		}

		value, err := r.resolveField(ctx, op.Operation, field, variables)
		if err != nil {
			errs = append(errs, &gqlerror.Error{
				Message: err.Error(),
				Path:    ast.Path{ast.PathName(responseName(field))},
			})
			data[responseName(field)] = nil
			continue
		}
		data[responseName(field)] = value
	}
	return data, errs
}

func (r *Resolver) resolveField(ctx context.Context, operation ast.Operation, field *ast.Field, variables map[string]any) (any, error) {
	var (
		result any
		err    error
	)

	switch {
	case field.Name == "__typename":
		if operation == ast.Mutation {
			return "Mutation", nil
		}
		return "Query", nil

	case operation == ast.Query && field.Name == "health":
		result, err = r.Query().Health(ctx)

	case operation == ast.Query && field.Name == "carriers":
		result, err = r.Query().Carriers(ctx)

	case operation == ast.Mutation && field.Name == "createShipment":
		var input CreateShipmentInput
		if err := decodeArgument(field, "input", variables, &input); err != nil {
			return nil, err
		}
		result, err = r.Mutation().CreateShipment(ctx, input)

	case operation == ast.Mutation && field.Name == "cancelShipment":
		var input CancelShipmentInput
		if err := decodeArgument(field, "input", variables, &input); err != nil {
			return nil, err
		}
		result, err = r.Mutation().CancelShipment(ctx, input)

	default:
		return nil, fmt.Errorf("field %q is not implemented", field.Name)
	}

	if err != nil {
		return nil, err
	}
	return project(result, field.SelectionSet)
}

// decodeArgument resolves an argument, literal or variable, into target.
func decodeArgument(field *ast.Field, name string, variables map[string]any, target any) error {
	arg := field.Arguments.ForName(name)
	if arg == nil {
		return fmt.Errorf("missing argument %q", name)
	}
	value, err := arg.Value.Value(variables)
	if err != nil {
		return fmt.Errorf("argument %q: %w", name, err)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("argument %q: %w", name, err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("argument %q: %w", name, err)
	}
	return nil
}

func project(v any, set ast.SelectionSet) (any, error) {
	if len(set) == 0 {
		return v, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}
	return selectFields(generic, set), nil
}

func selectFields(v any, set ast.SelectionSet) any {
	if len(set) == 0 {
		return v
	}
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(set))
		for _, sel := range set {
			f, ok := sel.(*ast.Field)
			if !ok {
				continue
			}
			out[responseName(f)] = selectFields(t[f.Name], f.SelectionSet)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, it := range t {
			out[i] = selectFields(it, set)
		}
		return out
	default:
		return v
	}
}

func responseName(f *ast.Field) string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}
