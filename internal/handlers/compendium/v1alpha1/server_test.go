package v1alpha1_test

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/KirkDiggler/steel-compendium/internal/entities/drawsteel"
	"github.com/KirkDiggler/steel-compendium/internal/errors"
	v1alpha1 "github.com/KirkDiggler/steel-compendium/internal/handlers/compendium/v1alpha1"
	"github.com/KirkDiggler/steel-compendium/internal/orchestrators/powerroll"
	"github.com/KirkDiggler/steel-compendium/internal/parser"
	"github.com/KirkDiggler/steel-compendium/internal/repositories/catalog"
	"github.com/KirkDiggler/steel-compendium/internal/testutils"
	"github.com/KirkDiggler/steel-compendium/internal/testutils/fixtures"
)

// fixedRoller always rolls the same dice
type fixedRoller struct {
	rolls []int
}

func (r *fixedRoller) Roll(_ int) (int, error) { return r.rolls[0], nil }

func (r *fixedRoller) RollN(_, _ int) ([]int, error) { return r.rolls, nil }

// startCatalog serves a redis-backed catalog over an in-memory listener
func startCatalog(t *testing.T) v1alpha1.CatalogServiceClient {
	t.Helper()
	ctx := context.Background()

	client, _ := testutils.CreateTestRedisClient(t)
	repo, err := catalog.NewRedis(&catalog.RedisConfig{Client: client})
	require.NoError(t, err)

	p := parser.Default()
	var abilities []*drawsteel.AbilityRecord
	var features []*drawsteel.FeatureRecord
	for _, src := range []string{fixtures.Gouge, fixtures.BackBlast, fixtures.Judgment} {
		doc, err := p.ParseDocument("fixture.md", []byte(src))
		require.NoError(t, err)
		if doc.Ability != nil {
			abilities = append(abilities, doc.Ability)
		}
		if doc.Feature != nil {
			features = append(features, doc.Feature)
			abilities = append(abilities, doc.Feature.Abilities...)
		}
	}
	_, err = repo.SaveAbilities(ctx, catalog.SaveAbilitiesInput{Abilities: abilities})
	require.NoError(t, err)
	_, err = repo.SaveFeatures(ctx, catalog.SaveFeaturesInput{Features: features})
	require.NoError(t, err)

	roll, err := powerroll.New(&powerroll.Config{Roller: &fixedRoller{rolls: []int{6, 6}}})
	require.NoError(t, err)

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{Repository: repo, PowerRoll: roll})
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	v1alpha1.RegisterCatalogServiceServer(srv, handler)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return v1alpha1.NewCatalogServiceClient(conn)
}

func TestCatalogServiceOverGRPC(t *testing.T) {
	ctx := context.Background()
	client := startCatalog(t)

	t.Run("get ability", func(t *testing.T) {
		resp, err := client.GetAbility(ctx, wrapperspb.String("judgment-smite"))
		require.NoError(t, err)

		smite, err := v1alpha1.DecodeAbility(resp)
		require.NoError(t, err)
		assert.Equal(t, "Smite", smite.Name)
		assert.Equal(t, &drawsteel.Cost{Amount: 3, Resource: "Wrath"}, smite.Cost)
		assert.Equal(t, "judgment", smite.OwnerID)
	})

	t.Run("list by owner", func(t *testing.T) {
		resp, err := client.ListAbilities(ctx, v1alpha1.ListRequest("", "judgment"))
		require.NoError(t, err)

		list, err := v1alpha1.DecodeAbilityList(resp)
		require.NoError(t, err)
		assert.Equal(t, 2, list.Total)
	})

	t.Run("list by class", func(t *testing.T) {
		resp, err := client.ListAbilities(ctx, v1alpha1.ListRequest("fury", ""))
		require.NoError(t, err)

		list, err := v1alpha1.DecodeAbilityList(resp)
		require.NoError(t, err)
		require.Equal(t, 1, list.Total)
		assert.Equal(t, "gouge", list.Abilities[0].ID)
	})

	t.Run("get feature", func(t *testing.T) {
		resp, err := client.GetFeature(ctx, wrapperspb.String("judgment"))
		require.NoError(t, err)

		feature, err := v1alpha1.DecodeFeature(resp)
		require.NoError(t, err)
		assert.Equal(t, drawsteel.KindFeature, feature.Kind)
		assert.Len(t, feature.Abilities, 2)
	})

	t.Run("roll", func(t *testing.T) {
		req, err := v1alpha1.RollRequest("gouge", 3)
		require.NoError(t, err)

		resp, err := client.RollAbility(ctx, req)
		require.NoError(t, err)

		res, err := v1alpha1.DecodeRollResult(resp)
		require.NoError(t, err)
		assert.Equal(t, 15, res.Total)
		assert.Equal(t, drawsteel.TierAverage, res.TierName)
		require.NotNil(t, res.Tier)
		assert.Equal(t, "5 + M", res.Tier.Damage.Formula)
	})

	t.Run("errors keep their code", func(t *testing.T) {
		_, err := client.GetAbility(ctx, wrapperspb.String("missing"))
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(errors.FromGRPCError(err)))

		req, err := v1alpha1.RollRequest("back-blast-3-wrath", 0)
		require.NoError(t, err)
		_, err = client.RollAbility(ctx, req)
		converted := errors.FromGRPCError(err)
		assert.True(t, errors.IsFailedPrecondition(converted))
		assert.Equal(t, "back-blast-3-wrath", errors.GetMeta(converted)["ability_id"])
	})
}
