// SPDX-License-Identifier: MPL-2.0

package redshiftops

import (
	"github.com/aws/aws-sdk-go-v2/service/redshift"
	"github.com/aws/aws-sdk-go-v2/service/redshift/types"

	"github.com/invowk/rsctl/internal/invoke"
)

const groupUsageLimit = "usage-limit"

// usageLimitFields is the field table shared by the create and modify
// responses, which have the same flat shape.
func usageLimitFields[Out any](
	id func(*Out) *string,
	cluster func(*Out) *string,
	feature func(*Out) types.UsageLimitFeatureType,
	limit func(*Out) types.UsageLimitLimitType,
	amount func(*Out) *int64,
	period func(*Out) types.UsageLimitPeriod,
	breach func(*Out) types.UsageLimitBreachAction,
	tags func(*Out) []types.Tag,
) []invoke.Field[Out] {
	return []invoke.Field[Out]{
		invoke.NewField("UsageLimitId", id),
		invoke.NewField("ClusterIdentifier", cluster),
		invoke.NewField("FeatureType", feature),
		invoke.NewField("LimitType", limit),
		invoke.NewField("Amount", amount),
		invoke.NewField("Period", period),
		invoke.NewField("BreachAction", breach),
		invoke.NewField("Tags", tags),
	}
}

func usageLimitOperations() []Runner {
	return []Runner{
		&operation[redshift.CreateUsageLimitInput, redshift.CreateUsageLimitOutput]{
			Name:    "CreateUsageLimit",
			Group:   groupUsageLimit,
			Verb:    "create",
			Summary: "Create a usage limit for a feature of a cluster",
			Impact:  invoke.ImpactLow,
			Target:  "ClusterIdentifier",
			Select:  "*",
			Params: []invoke.Param[redshift.CreateUsageLimitInput]{
				invoke.String("ClusterIdentifier", func(in *redshift.CreateUsageLimitInput) **string { return &in.ClusterIdentifier }).
					Required().Length(1, 63),
				invoke.Enum("FeatureType", types.UsageLimitFeatureType("").Values(),
					func(in *redshift.CreateUsageLimitInput) *types.UsageLimitFeatureType { return &in.FeatureType }).
					Required().Describe("Redshift feature the limit applies to"),
				invoke.Enum("LimitType", types.UsageLimitLimitType("").Values(),
					func(in *redshift.CreateUsageLimitInput) *types.UsageLimitLimitType { return &in.LimitType }).
					Required().Describe("time (minutes) or data-scanned (TB)"),
				invoke.Int64("Amount", func(in *redshift.CreateUsageLimitInput) **int64 { return &in.Amount }).
					Required().Range(1, 1<<53).Describe("limit value, in minutes or TB"),
				invoke.Enum("Period", types.UsageLimitPeriod("").Values(),
					func(in *redshift.CreateUsageLimitInput) *types.UsageLimitPeriod { return &in.Period }),
				invoke.Enum("BreachAction", types.UsageLimitBreachAction("").Values(),
					func(in *redshift.CreateUsageLimitInput) *types.UsageLimitBreachAction { return &in.BreachAction }).
					Describe("action taken when the limit is reached"),
				tagsParam(func(in *redshift.CreateUsageLimitInput) *[]types.Tag { return &in.Tags }),
			},
			Fields: usageLimitFields(
				func(out *redshift.CreateUsageLimitOutput) *string { return out.UsageLimitId },
				func(out *redshift.CreateUsageLimitOutput) *string { return out.ClusterIdentifier },
				func(out *redshift.CreateUsageLimitOutput) types.UsageLimitFeatureType { return out.FeatureType },
				func(out *redshift.CreateUsageLimitOutput) types.UsageLimitLimitType { return out.LimitType },
				func(out *redshift.CreateUsageLimitOutput) *int64 { return out.Amount },
				func(out *redshift.CreateUsageLimitOutput) types.UsageLimitPeriod { return out.Period },
				func(out *redshift.CreateUsageLimitOutput) types.UsageLimitBreachAction { return out.BreachAction },
				func(out *redshift.CreateUsageLimitOutput) []types.Tag { return out.Tags },
			),
			Call: call(API.CreateUsageLimit),
		},
		&operation[redshift.DeleteUsageLimitInput, redshift.DeleteUsageLimitOutput]{
			Name:     "DeleteUsageLimit",
			Group:    groupUsageLimit,
			Verb:     "delete",
			Summary:  "Delete a usage limit",
			Impact:   invoke.ImpactHigh,
			Target:   "UsageLimitId",
			PassThru: "UsageLimitId",
			Params: []invoke.Param[redshift.DeleteUsageLimitInput]{
				invoke.String("UsageLimitId", func(in *redshift.DeleteUsageLimitInput) **string { return &in.UsageLimitId }).
					Required().Lenient().Alias("Id"),
			},
			Call: call(API.DeleteUsageLimit),
		},
		&operation[redshift.DescribeUsageLimitsInput, redshift.DescribeUsageLimitsOutput]{
			Name:    "DescribeUsageLimits",
			Group:   groupUsageLimit,
			Verb:    "describe",
			Summary: "Describe usage limits by identifier, cluster or feature",
			Select:  "UsageLimits",
			Params: []invoke.Param[redshift.DescribeUsageLimitsInput]{
				invoke.String("UsageLimitId", func(in *redshift.DescribeUsageLimitsInput) **string { return &in.UsageLimitId }).
					Alias("Id"),
				invoke.String("ClusterIdentifier", func(in *redshift.DescribeUsageLimitsInput) **string { return &in.ClusterIdentifier }),
				invoke.Enum("FeatureType", types.UsageLimitFeatureType("").Values(),
					func(in *redshift.DescribeUsageLimitsInput) *types.UsageLimitFeatureType { return &in.FeatureType }),
				invoke.Int32("MaxRecords", func(in *redshift.DescribeUsageLimitsInput) **int32 { return &in.MaxRecords }).
					Range(20, 100),
				invoke.String("Marker", func(in *redshift.DescribeUsageLimitsInput) **string { return &in.Marker }),
				invoke.Strings("TagKeys", func(in *redshift.DescribeUsageLimitsInput) *[]string { return &in.TagKeys }),
				invoke.Strings("TagValues", func(in *redshift.DescribeUsageLimitsInput) *[]string { return &in.TagValues }),
			},
			Fields: []invoke.Field[redshift.DescribeUsageLimitsOutput]{
				invoke.NewField("UsageLimits", func(out *redshift.DescribeUsageLimitsOutput) []types.UsageLimit { return out.UsageLimits }),
				invoke.NewField("Marker", func(out *redshift.DescribeUsageLimitsOutput) *string { return out.Marker }),
			},
			Call: call(API.DescribeUsageLimits),
		},
		&operation[redshift.ModifyUsageLimitInput, redshift.ModifyUsageLimitOutput]{
			Name:    "ModifyUsageLimit",
			Group:   groupUsageLimit,
			Verb:    "modify",
			Summary: "Change the amount or breach action of a usage limit",
			Impact:  invoke.ImpactMedium,
			Target:  "UsageLimitId",
			Select:  "*",
			Params: []invoke.Param[redshift.ModifyUsageLimitInput]{
				invoke.String("UsageLimitId", func(in *redshift.ModifyUsageLimitInput) **string { return &in.UsageLimitId }).
					Required().Lenient().Alias("Id"),
				invoke.Int64("Amount", func(in *redshift.ModifyUsageLimitInput) **int64 { return &in.Amount }).
					Range(1, 1<<53),
				invoke.Enum("BreachAction", types.UsageLimitBreachAction("").Values(),
					func(in *redshift.ModifyUsageLimitInput) *types.UsageLimitBreachAction { return &in.BreachAction }),
			},
			Fields: usageLimitFields(
				func(out *redshift.ModifyUsageLimitOutput) *string { return out.UsageLimitId },
				func(out *redshift.ModifyUsageLimitOutput) *string { return out.ClusterIdentifier },
				func(out *redshift.ModifyUsageLimitOutput) types.UsageLimitFeatureType { return out.FeatureType },
				func(out *redshift.ModifyUsageLimitOutput) types.UsageLimitLimitType { return out.LimitType },
				func(out *redshift.ModifyUsageLimitOutput) *int64 { return out.Amount },
				func(out *redshift.ModifyUsageLimitOutput) types.UsageLimitPeriod { return out.Period },
				func(out *redshift.ModifyUsageLimitOutput) types.UsageLimitBreachAction { return out.BreachAction },
				func(out *redshift.ModifyUsageLimitOutput) []types.Tag { return out.Tags },
			),
			Call: call(API.ModifyUsageLimit),
		},
	}
}
