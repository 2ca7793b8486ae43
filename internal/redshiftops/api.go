// SPDX-License-Identifier: MPL-2.0

package redshiftops

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/redshift"

	"github.com/invowk/rsctl/internal/invoke"
)

type (
	// API is the subset of the Redshift client used by the bound operations.
	// *redshift.Client satisfies it.
	API interface {
		CreateCluster(ctx context.Context, in *redshift.CreateClusterInput, optFns ...func(*redshift.Options)) (*redshift.CreateClusterOutput, error)
		DeleteCluster(ctx context.Context, in *redshift.DeleteClusterInput, optFns ...func(*redshift.Options)) (*redshift.DeleteClusterOutput, error)
		DescribeClusters(ctx context.Context, in *redshift.DescribeClustersInput, optFns ...func(*redshift.Options)) (*redshift.DescribeClustersOutput, error)
		ModifyCluster(ctx context.Context, in *redshift.ModifyClusterInput, optFns ...func(*redshift.Options)) (*redshift.ModifyClusterOutput, error)
		RebootCluster(ctx context.Context, in *redshift.RebootClusterInput, optFns ...func(*redshift.Options)) (*redshift.RebootClusterOutput, error)
		PauseCluster(ctx context.Context, in *redshift.PauseClusterInput, optFns ...func(*redshift.Options)) (*redshift.PauseClusterOutput, error)
		ResumeCluster(ctx context.Context, in *redshift.ResumeClusterInput, optFns ...func(*redshift.Options)) (*redshift.ResumeClusterOutput, error)
		ResizeCluster(ctx context.Context, in *redshift.ResizeClusterInput, optFns ...func(*redshift.Options)) (*redshift.ResizeClusterOutput, error)

		CreateUsageLimit(ctx context.Context, in *redshift.CreateUsageLimitInput, optFns ...func(*redshift.Options)) (*redshift.CreateUsageLimitOutput, error)
		DeleteUsageLimit(ctx context.Context, in *redshift.DeleteUsageLimitInput, optFns ...func(*redshift.Options)) (*redshift.DeleteUsageLimitOutput, error)
		DescribeUsageLimits(ctx context.Context, in *redshift.DescribeUsageLimitsInput, optFns ...func(*redshift.Options)) (*redshift.DescribeUsageLimitsOutput, error)
		ModifyUsageLimit(ctx context.Context, in *redshift.ModifyUsageLimitInput, optFns ...func(*redshift.Options)) (*redshift.ModifyUsageLimitOutput, error)

		AuthorizeDataShare(ctx context.Context, in *redshift.AuthorizeDataShareInput, optFns ...func(*redshift.Options)) (*redshift.AuthorizeDataShareOutput, error)
		DeauthorizeDataShare(ctx context.Context, in *redshift.DeauthorizeDataShareInput, optFns ...func(*redshift.Options)) (*redshift.DeauthorizeDataShareOutput, error)
		AssociateDataShareConsumer(ctx context.Context, in *redshift.AssociateDataShareConsumerInput, optFns ...func(*redshift.Options)) (*redshift.AssociateDataShareConsumerOutput, error)
		DisassociateDataShareConsumer(ctx context.Context, in *redshift.DisassociateDataShareConsumerInput, optFns ...func(*redshift.Options)) (*redshift.DisassociateDataShareConsumerOutput, error)
		RejectDataShare(ctx context.Context, in *redshift.RejectDataShareInput, optFns ...func(*redshift.Options)) (*redshift.RejectDataShareOutput, error)
		DescribeDataShares(ctx context.Context, in *redshift.DescribeDataSharesInput, optFns ...func(*redshift.Options)) (*redshift.DescribeDataSharesOutput, error)
		DescribeDataSharesForConsumer(ctx context.Context, in *redshift.DescribeDataSharesForConsumerInput, optFns ...func(*redshift.Options)) (*redshift.DescribeDataSharesForConsumerOutput, error)
		DescribeDataSharesForProducer(ctx context.Context, in *redshift.DescribeDataSharesForProducerInput, optFns ...func(*redshift.Options)) (*redshift.DescribeDataSharesForProducerOutput, error)

		CreateRedshiftIdcApplication(ctx context.Context, in *redshift.CreateRedshiftIdcApplicationInput, optFns ...func(*redshift.Options)) (*redshift.CreateRedshiftIdcApplicationOutput, error)
		DeleteRedshiftIdcApplication(ctx context.Context, in *redshift.DeleteRedshiftIdcApplicationInput, optFns ...func(*redshift.Options)) (*redshift.DeleteRedshiftIdcApplicationOutput, error)
		DescribeRedshiftIdcApplications(ctx context.Context, in *redshift.DescribeRedshiftIdcApplicationsInput, optFns ...func(*redshift.Options)) (*redshift.DescribeRedshiftIdcApplicationsOutput, error)
		ModifyRedshiftIdcApplication(ctx context.Context, in *redshift.ModifyRedshiftIdcApplicationInput, optFns ...func(*redshift.Options)) (*redshift.ModifyRedshiftIdcApplicationOutput, error)
	}

	// operation is an invoke.Operation bound against the Redshift API.
	operation[In, Out any] = invoke.Operation[API, In, Out]

	// Runner is a type-erased bound operation.
	Runner = invoke.Runner[API]
)

// Compile-time check that the SDK client satisfies API.
var _ API = (*redshift.Client)(nil)

// call adapts an API method expression (e.g. API.RejectDataShare) to the
// dispatch signature expected by invoke.Operation.
func call[In, Out any](m func(API, context.Context, *In, ...func(*redshift.Options)) (*Out, error)) func(context.Context, API, *In) (*Out, error) {
	return func(ctx context.Context, client API, in *In) (*Out, error) {
		return m(client, ctx, in)
	}
}
