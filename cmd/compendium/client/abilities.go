package client

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/KirkDiggler/steel-compendium/internal/entities/drawsteel"
	v1alpha1 "github.com/KirkDiggler/steel-compendium/internal/handlers/compendium/v1alpha1"
)

var (
	filterClass string
	filterOwner string
)

var getAbilityCmd = &cobra.Command{
	Use:   "get-ability ID",
	Short: "Get one ability by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runGetAbility,
}

var listAbilitiesCmd = &cobra.Command{
	Use:   "list-abilities",
	Short: "List abilities, optionally by class or owning feature",
	Args:  cobra.NoArgs,
	RunE:  runListAbilities,
}

func init() {
	listAbilitiesCmd.Flags().StringVar(&filterClass, "class", "", "only abilities of this class")
	listAbilitiesCmd.Flags().StringVar(&filterOwner, "owner", "", "only abilities embedded in this feature id")
}

func runGetAbility(cmd *cobra.Command, args []string) error {
	return call(cmd.Context(), func(ctx context.Context, client v1alpha1.CatalogServiceClient) error {
		resp, err := client.GetAbility(ctx, wrapperspb.String(args[0]))
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd, resp)
		}

		ability, err := v1alpha1.DecodeAbility(resp)
		if err != nil {
			return err
		}
		printAbility(cmd.OutOrStdout(), ability)
		return nil
	})
}

func runListAbilities(cmd *cobra.Command, _ []string) error {
	return call(cmd.Context(), func(ctx context.Context, client v1alpha1.CatalogServiceClient) error {
		resp, err := client.ListAbilities(ctx, v1alpha1.ListRequest(filterClass, filterOwner))
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd, resp)
		}

		list, err := v1alpha1.DecodeAbilityList(resp)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		for _, a := range list.Abilities {
			fmt.Fprintf(w, "%-28s %-10s %2d  %s\n", a.ID, a.Class, a.Level, a.Name)
		}
		fmt.Fprintf(w, "%d abilities\n", list.Total)
		return nil
	})
}

func printAbility(w io.Writer, a *drawsteel.AbilityRecord) {
	title := a.Name
	if a.Cost != nil {
		title = fmt.Sprintf("%s (%d %s)", a.Name, a.Cost.Amount, a.Cost.Resource)
	}
	fmt.Fprintln(w, title)
	if a.Flavor != "" {
		fmt.Fprintf(w, "  %s\n", a.Flavor)
	}
	if a.Action != nil {
		fmt.Fprintf(w, "  %s | %s\n", strings.Join(a.Action.Keywords, ", "), a.Action.Type)
	}
	if a.Targeting != nil {
		fmt.Fprintf(w, "  Distance: %s  Target: %s\n", a.Targeting.Distance, a.Targeting.Target)
	}

	for _, c := range a.ComponentOrder {
		switch c {
		case drawsteel.ComponentPowerRoll:
			fmt.Fprintf(w, "  Power Roll + %s\n", a.PowerRoll.Characteristic)
			for _, tier := range a.PowerRoll.Tiers {
				fmt.Fprintf(w, "    %-6s %s\n", tier.Range, tierText(tier))
			}
		case drawsteel.ComponentPersistent:
			fmt.Fprintf(w, "  Persistent %d: %s\n", a.Persistent.Turns, a.Persistent.Description)
		case drawsteel.ComponentCostOptions:
			for _, opt := range a.CostOptions {
				fmt.Fprintf(w, "  Spend %s %s: %s\n", opt.Amount, opt.Resource, opt.Effect)
			}
		default:
			if text := effectText(a.Effects, c); text != "" {
				fmt.Fprintf(w, "  %s: %s\n", c, text)
			}
		}
	}
}

func tierText(t drawsteel.Tier) string {
	var parts []string
	if t.Damage != nil {
		damage := t.Damage.Formula + " damage"
		if t.Damage.Type != "" {
			damage = t.Damage.Formula + " " + t.Damage.Type + " damage"
		}
		parts = append(parts, damage)
	}
	parts = append(parts, t.Effects...)
	return strings.Join(parts, "; ")
}

func effectText(e *drawsteel.Effects, c drawsteel.Component) string {
	if e == nil {
		return ""
	}
	switch c {
	case drawsteel.ComponentTrigger:
		return e.Trigger
	case drawsteel.ComponentBefore:
		return e.Before
	case drawsteel.ComponentAfter:
		return e.After
	case drawsteel.ComponentEffect:
		return e.Effect
	case drawsteel.ComponentMarkBenefit:
		return e.MarkBenefit
	case drawsteel.ComponentStrained:
		return e.Strained
	default:
		return ""
	}
}
