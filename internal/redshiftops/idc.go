// SPDX-License-Identifier: MPL-2.0

package redshiftops

import (
	"github.com/aws/aws-sdk-go-v2/service/redshift"
	"github.com/aws/aws-sdk-go-v2/service/redshift/types"

	"github.com/invowk/rsctl/internal/invoke"
)

const (
	groupIdc = "idc"

	idcApplicationNamePattern = `^[a-z][a-z0-9]*(-[a-z0-9]+)*$`
	idcDisplayNamePattern     = `^[\w+=,.@-]+$`
)

func idcApplicationField[Out any](get func(*Out) *types.RedshiftIdcApplication) invoke.Field[Out] {
	return invoke.NewField("RedshiftIdcApplication", get)
}

func idcOperations() []Runner {
	return []Runner{
		&operation[redshift.CreateRedshiftIdcApplicationInput, redshift.CreateRedshiftIdcApplicationOutput]{
			Name:    "CreateRedshiftIdcApplication",
			Group:   groupIdc,
			Verb:    "create",
			Summary: "Create an IAM Identity Center application for Redshift",
			Impact:  invoke.ImpactLow,
			Target:  "RedshiftIdcApplicationName",
			Select:  "RedshiftIdcApplication",
			Params: []invoke.Param[redshift.CreateRedshiftIdcApplicationInput]{
				invoke.String("IdcInstanceArn", func(in *redshift.CreateRedshiftIdcApplicationInput) **string { return &in.IdcInstanceArn }).
					Required().Describe("ARN of the IAM Identity Center instance"),
				invoke.String("RedshiftIdcApplicationName", func(in *redshift.CreateRedshiftIdcApplicationInput) **string {
					return &in.RedshiftIdcApplicationName
				}).Required().Alias("Name").Length(1, 63).Pattern(idcApplicationNamePattern),
				invoke.String("IdcDisplayName", func(in *redshift.CreateRedshiftIdcApplicationInput) **string { return &in.IdcDisplayName }).
					Required().Length(1, 127).Pattern(idcDisplayNamePattern),
				invoke.String("IamRoleArn", func(in *redshift.CreateRedshiftIdcApplicationInput) **string { return &in.IamRoleArn }).
					Required(),
				invoke.String("IdentityNamespace", func(in *redshift.CreateRedshiftIdcApplicationInput) **string { return &in.IdentityNamespace }).
					Length(1, 127).Describe("namespace prefixed to Identity Center users and groups"),
				tagsParam(func(in *redshift.CreateRedshiftIdcApplicationInput) *[]types.Tag { return &in.Tags }),
			},
			Fields: []invoke.Field[redshift.CreateRedshiftIdcApplicationOutput]{
				idcApplicationField(func(out *redshift.CreateRedshiftIdcApplicationOutput) *types.RedshiftIdcApplication {
					return out.RedshiftIdcApplication
				}),
			},
			Call: call(API.CreateRedshiftIdcApplication),
		},
		&operation[redshift.DeleteRedshiftIdcApplicationInput, redshift.DeleteRedshiftIdcApplicationOutput]{
			Name:     "DeleteRedshiftIdcApplication",
			Group:    groupIdc,
			Verb:     "delete",
			Summary:  "Delete an IAM Identity Center application",
			Impact:   invoke.ImpactHigh,
			Target:   "RedshiftIdcApplicationArn",
			PassThru: "RedshiftIdcApplicationArn",
			Params: []invoke.Param[redshift.DeleteRedshiftIdcApplicationInput]{
				invoke.String("RedshiftIdcApplicationArn", func(in *redshift.DeleteRedshiftIdcApplicationInput) **string {
					return &in.RedshiftIdcApplicationArn
				}).Required().Alias("Arn"),
			},
			Call: call(API.DeleteRedshiftIdcApplication),
		},
		&operation[redshift.DescribeRedshiftIdcApplicationsInput, redshift.DescribeRedshiftIdcApplicationsOutput]{
			Name:    "DescribeRedshiftIdcApplications",
			Group:   groupIdc,
			Verb:    "describe",
			Summary: "Describe IAM Identity Center applications",
			Select:  "RedshiftIdcApplications",
			Params: []invoke.Param[redshift.DescribeRedshiftIdcApplicationsInput]{
				invoke.String("RedshiftIdcApplicationArn", func(in *redshift.DescribeRedshiftIdcApplicationsInput) **string {
					return &in.RedshiftIdcApplicationArn
				}).Alias("Arn"),
				invoke.Int32("MaxRecords", func(in *redshift.DescribeRedshiftIdcApplicationsInput) **int32 { return &in.MaxRecords }).
					Range(20, 100),
				invoke.String("Marker", func(in *redshift.DescribeRedshiftIdcApplicationsInput) **string { return &in.Marker }),
			},
			Fields: []invoke.Field[redshift.DescribeRedshiftIdcApplicationsOutput]{
				invoke.NewField("RedshiftIdcApplications", func(out *redshift.DescribeRedshiftIdcApplicationsOutput) []types.RedshiftIdcApplication {
					return out.RedshiftIdcApplications
				}),
				invoke.NewField("Marker", func(out *redshift.DescribeRedshiftIdcApplicationsOutput) *string { return out.Marker }),
			},
			Call: call(API.DescribeRedshiftIdcApplications),
		},
		&operation[redshift.ModifyRedshiftIdcApplicationInput, redshift.ModifyRedshiftIdcApplicationOutput]{
			Name:    "ModifyRedshiftIdcApplication",
			Group:   groupIdc,
			Verb:    "modify",
			Summary: "Change the role, display name or namespace of an Identity Center application",
			Impact:  invoke.ImpactMedium,
			Target:  "RedshiftIdcApplicationArn",
			Select:  "RedshiftIdcApplication",
			Params: []invoke.Param[redshift.ModifyRedshiftIdcApplicationInput]{
				invoke.String("RedshiftIdcApplicationArn", func(in *redshift.ModifyRedshiftIdcApplicationInput) **string {
					return &in.RedshiftIdcApplicationArn
				}).Required().Alias("Arn"),
				invoke.String("IamRoleArn", func(in *redshift.ModifyRedshiftIdcApplicationInput) **string { return &in.IamRoleArn }),
				invoke.String("IdcDisplayName", func(in *redshift.ModifyRedshiftIdcApplicationInput) **string { return &in.IdcDisplayName }).
					Length(1, 127).Pattern(idcDisplayNamePattern),
				invoke.String("IdentityNamespace", func(in *redshift.ModifyRedshiftIdcApplicationInput) **string { return &in.IdentityNamespace }).
					Length(1, 127),
			},
			Fields: []invoke.Field[redshift.ModifyRedshiftIdcApplicationOutput]{
				idcApplicationField(func(out *redshift.ModifyRedshiftIdcApplicationOutput) *types.RedshiftIdcApplication {
					return out.RedshiftIdcApplication
				}),
			},
			Call: call(API.ModifyRedshiftIdcApplication),
		},
	}
}
