package repository

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/domain"
)

func TestDecodeRotationRule(t *testing.T) {
	raw := []byte(`{"type":"rotation","config":{"roles":["INVESTIGATOR","TRIAGE_LEAD"]}}`)

	rule, err := decodeRoutingRule(raw)

	require.NoError(t, err)
	require.Equal(t, domain.StrategyRotation, rule.Type)
	cfg, ok := rule.Config.(domain.RotationConfig)
	require.True(t, ok)
	require.Equal(t, []domain.UserRole{domain.UserRoleInvestigator, domain.UserRoleTriageLead}, cfg.Roles)
}

func TestDecodeLoadAwareRule(t *testing.T) {
	raw := []byte(`{"type":"load_aware","config":{"max_load":10,"team_id":"team-1"}}`)

	rule, err := decodeRoutingRule(raw)

	require.NoError(t, err)
	require.Equal(t, domain.StrategyLoadAware, rule.Type)
	cfg, ok := rule.Config.(domain.LoadAwareConfig)
	require.True(t, ok)
	require.NotNil(t, cfg.MaxLoad)
	require.Equal(t, 10, *cfg.MaxLoad)
	require.NotNil(t, cfg.TeamID)
	require.Equal(t, "team-1", *cfg.TeamID)
}

func TestDecodeLoadAwareRuleRejectsNegativeCap(t *testing.T) {
	raw := []byte(`{"type":"load_aware","config":{"max_load":-1}}`)

	_, err := decodeRoutingRule(raw)

	require.Error(t, err)
}

func TestDecodeLocationRule(t *testing.T) {
	raw := []byte(`{"type":"location","config":{"mapping":{"US":"u1","EMEA":"u2"},"fallback_user_id":"u9"}}`)

	rule, err := decodeRoutingRule(raw)

	require.NoError(t, err)
	cfg, ok := rule.Config.(domain.LocationConfig)
	require.True(t, ok)
	require.Equal(t, "u1", cfg.Mapping["US"])
	require.NotNil(t, cfg.FallbackUserID)
	require.Equal(t, "u9", *cfg.FallbackUserID)
}

func TestDecodeLocationRuleNeedsMappingOrFallback(t *testing.T) {
	raw := []byte(`{"type":"location","config":{}}`)

	_, err := decodeRoutingRule(raw)

	require.Error(t, err)
}

func TestDecodeUnknownTypeKeepsTag(t *testing.T) {
	raw := []byte(`{"type":"skill_based","config":{"skills":["fraud"]}}`)

	rule, err := decodeRoutingRule(raw)

	require.NoError(t, err)
	require.Equal(t, domain.StrategyType("skill_based"), rule.Type)
	require.Nil(t, rule.Config)
}

func TestDecodeMissingTypeFails(t *testing.T) {
	raw := []byte(`{"config":{"roles":[]}}`)

	_, err := decodeRoutingRule(raw)

	require.Error(t, err)
}

func TestDecodeMalformedJSONFails(t *testing.T) {
	raw := []byte(`{"type":"rotation",`)

	_, err := decodeRoutingRule(raw)

	require.Error(t, err)
}
