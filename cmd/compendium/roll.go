package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/steel-compendium/internal/entities/drawsteel"
	"github.com/KirkDiggler/steel-compendium/internal/errors"
	"github.com/KirkDiggler/steel-compendium/internal/orchestrators/compendium"
	"github.com/KirkDiggler/steel-compendium/internal/orchestrators/powerroll"
	"github.com/KirkDiggler/steel-compendium/internal/pkg/clock"
	"github.com/KirkDiggler/steel-compendium/internal/pkg/idgen"
)

var (
	rollBonus   int
	rollAbility string
)

var rollCmd = &cobra.Command{
	Use:   "roll FILE",
	Short: "Roll the power roll of an ability file",
	Long: `Roll parses one markdown file and rolls its power roll. For a feature
file, --ability picks an embedded ability by name or id; otherwise the first
embedded ability with a power roll is used.`,
	Args: cobra.ExactArgs(1),
	RunE: runRoll,
}

func init() {
	rollCmd.Flags().IntVar(&rollBonus, "bonus", 0, "characteristic bonus added to the roll")
	rollCmd.Flags().StringVar(&rollAbility, "ability", "", "embedded ability name or id")
}

func runRoll(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]

	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", path)
	}

	p, err := newParser()
	if err != nil {
		return err
	}

	svc, err := compendium.New(&compendium.Config{
		Parser: p,
		IDGen:  idgen.NewUUID("roll"),
		Clock:  clock.New(),
	})
	if err != nil {
		return err
	}

	parsed, err := svc.ParseFile(ctx, &compendium.ParseFileInput{Path: path, Data: raw})
	if err != nil {
		return err
	}

	ability, err := pickAbility(parsed.Document.Ability, parsed.Document.Feature, rollAbility)
	if err != nil {
		return err
	}

	roller, err := powerroll.New(&powerroll.Config{Roller: dice.DefaultRoller})
	if err != nil {
		return err
	}

	out, err := roller.Resolve(ctx, &powerroll.ResolveInput{Ability: ability, Bonus: rollBonus})
	if err != nil {
		return err
	}

	printRoll(cmd.OutOrStdout(), ability, out)
	return nil
}

// pickAbility selects the ability to roll from a parsed document
func pickAbility(ability *drawsteel.AbilityRecord, feature *drawsteel.FeatureRecord, want string) (*drawsteel.AbilityRecord, error) {
	if ability != nil {
		return ability, nil
	}
	if feature == nil {
		return nil, errors.InvalidArgument("document has no abilities")
	}

	for _, rec := range feature.Abilities {
		if want == "" {
			if rec.PowerRoll != nil {
				return rec, nil
			}
			continue
		}
		if strings.EqualFold(rec.Name, want) || rec.ID == want || rec.BaseID == want {
			return rec, nil
		}
	}

	if want == "" {
		return nil, errors.FailedPreconditionf("%s has no ability with a power roll", feature.Name)
	}
	return nil, errors.NotFoundf("%s has no ability %q", feature.Name, want)
}

func printRoll(w io.Writer, ability *drawsteel.AbilityRecord, out *powerroll.ResolveOutput) {
	fmt.Fprintf(w, "%s: Power Roll + %s\n", ability.Name, ability.PowerRoll.Characteristic)
	fmt.Fprintf(w, "  2d10 %v = %d, %+d = %d\n", out.Dice, out.Natural, out.Bonus, out.Total)
	if out.Critical {
		fmt.Fprintln(w, "  Critical!")
	}
	fmt.Fprintf(w, "  Tier: %s\n", out.TierName)

	if out.Tier == nil {
		return
	}
	if out.Tier.Damage != nil {
		damage := out.Tier.Damage.Formula
		if out.Tier.Damage.Type != "" {
			damage += " " + out.Tier.Damage.Type
		}
		fmt.Fprintf(w, "  Damage: %s\n", damage)
	}
	for _, effect := range out.Tier.Effects {
		fmt.Fprintf(w, "  Effect: %s\n", effect)
	}
}
