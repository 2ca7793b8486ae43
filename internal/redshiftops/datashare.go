// SPDX-License-Identifier: MPL-2.0

package redshiftops

import (
	"github.com/aws/aws-sdk-go-v2/service/redshift"
	"github.com/aws/aws-sdk-go-v2/service/redshift/types"

	"github.com/invowk/rsctl/internal/invoke"
)

const (
	groupDatashare = "datashare"

	// arnMaxLength bounds every datashare and consumer ARN.
	arnMaxLength = 2147483647
	arnPattern   = `^arn:[\w+=/,.@:-]+$`
)

// dataShareFields is the field table shared by every operation that returns a
// single datashare.
func dataShareFields[Out any](
	arn func(*Out) *string,
	producer func(*Out) *string,
	public func(*Out) *bool,
	associations func(*Out) []types.DataShareAssociation,
	managedBy func(*Out) *string,
) []invoke.Field[Out] {
	return []invoke.Field[Out]{
		invoke.NewField("DataShareArn", arn),
		invoke.NewField("ProducerArn", producer),
		invoke.NewField("AllowPubliclyAccessibleConsumers", public),
		invoke.NewField("DataShareAssociations", associations),
		invoke.NewField("ManagedBy", managedBy),
	}
}

func dataShareArn[In any](field func(*In) **string) invoke.Param[In] {
	return invoke.String("DataShareArn", field).
		Required().Lenient().Alias("Arn").Length(1, arnMaxLength).Pattern(arnPattern).
		Describe("ARN of the datashare")
}

func datashareOperations() []Runner {
	return []Runner{
		&operation[redshift.AuthorizeDataShareInput, redshift.AuthorizeDataShareOutput]{
			Name:     "AuthorizeDataShare",
			Group:    groupDatashare,
			Verb:     "authorize",
			Summary:  "Authorize a consumer account or namespace to use a datashare",
			Impact:   invoke.ImpactMedium,
			Target:   "DataShareArn",
			PassThru: "DataShareArn",
			Select:   "*",
			Params: []invoke.Param[redshift.AuthorizeDataShareInput]{
				dataShareArn(func(in *redshift.AuthorizeDataShareInput) **string { return &in.DataShareArn }),
				invoke.String("ConsumerIdentifier", func(in *redshift.AuthorizeDataShareInput) **string { return &in.ConsumerIdentifier }).
					Required().Length(1, arnMaxLength).Describe("consumer account ID or namespace ARN"),
				invoke.Bool("AllowWrites", func(in *redshift.AuthorizeDataShareInput) **bool { return &in.AllowWrites }),
			},
			Fields: dataShareFields(
				func(out *redshift.AuthorizeDataShareOutput) *string { return out.DataShareArn },
				func(out *redshift.AuthorizeDataShareOutput) *string { return out.ProducerArn },
				func(out *redshift.AuthorizeDataShareOutput) *bool { return out.AllowPubliclyAccessibleConsumers },
				func(out *redshift.AuthorizeDataShareOutput) []types.DataShareAssociation { return out.DataShareAssociations },
				func(out *redshift.AuthorizeDataShareOutput) *string { return out.ManagedBy },
			),
			Call: call(API.AuthorizeDataShare),
		},
		&operation[redshift.DeauthorizeDataShareInput, redshift.DeauthorizeDataShareOutput]{
			Name:     "DeauthorizeDataShare",
			Group:    groupDatashare,
			Verb:     "deauthorize",
			Summary:  "Remove a consumer's permission to use a datashare",
			Impact:   invoke.ImpactHigh,
			Target:   "DataShareArn",
			PassThru: "DataShareArn",
			Select:   "*",
			Params: []invoke.Param[redshift.DeauthorizeDataShareInput]{
				dataShareArn(func(in *redshift.DeauthorizeDataShareInput) **string { return &in.DataShareArn }),
				invoke.String("ConsumerIdentifier", func(in *redshift.DeauthorizeDataShareInput) **string { return &in.ConsumerIdentifier }).
					Required().Length(1, arnMaxLength),
			},
			Fields: dataShareFields(
				func(out *redshift.DeauthorizeDataShareOutput) *string { return out.DataShareArn },
				func(out *redshift.DeauthorizeDataShareOutput) *string { return out.ProducerArn },
				func(out *redshift.DeauthorizeDataShareOutput) *bool { return out.AllowPubliclyAccessibleConsumers },
				func(out *redshift.DeauthorizeDataShareOutput) []types.DataShareAssociation { return out.DataShareAssociations },
				func(out *redshift.DeauthorizeDataShareOutput) *string { return out.ManagedBy },
			),
			Call: call(API.DeauthorizeDataShare),
		},
		&operation[redshift.AssociateDataShareConsumerInput, redshift.AssociateDataShareConsumerOutput]{
			Name:     "AssociateDataShareConsumer",
			Group:    groupDatashare,
			Verb:     "associate-consumer",
			Summary:  "Associate a datashare with the calling account or a namespace",
			Impact:   invoke.ImpactMedium,
			Target:   "DataShareArn",
			PassThru: "DataShareArn",
			Select:   "*",
			Params: []invoke.Param[redshift.AssociateDataShareConsumerInput]{
				dataShareArn(func(in *redshift.AssociateDataShareConsumerInput) **string { return &in.DataShareArn }),
				invoke.Bool("AssociateEntireAccount", func(in *redshift.AssociateDataShareConsumerInput) **bool { return &in.AssociateEntireAccount }),
				invoke.String("ConsumerArn", func(in *redshift.AssociateDataShareConsumerInput) **string { return &in.ConsumerArn }).
					Length(1, arnMaxLength).Pattern(arnPattern),
				invoke.String("ConsumerRegion", func(in *redshift.AssociateDataShareConsumerInput) **string { return &in.ConsumerRegion }),
				invoke.Bool("AllowWrites", func(in *redshift.AssociateDataShareConsumerInput) **bool { return &in.AllowWrites }),
			},
			Fields: dataShareFields(
				func(out *redshift.AssociateDataShareConsumerOutput) *string { return out.DataShareArn },
				func(out *redshift.AssociateDataShareConsumerOutput) *string { return out.ProducerArn },
				func(out *redshift.AssociateDataShareConsumerOutput) *bool { return out.AllowPubliclyAccessibleConsumers },
				func(out *redshift.AssociateDataShareConsumerOutput) []types.DataShareAssociation { return out.DataShareAssociations },
				func(out *redshift.AssociateDataShareConsumerOutput) *string { return out.ManagedBy },
			),
			Call: call(API.AssociateDataShareConsumer),
		},
		&operation[redshift.DisassociateDataShareConsumerInput, redshift.DisassociateDataShareConsumerOutput]{
			Name:     "DisassociateDataShareConsumer",
			Group:    groupDatashare,
			Verb:     "disassociate-consumer",
			Summary:  "Remove a datashare from the calling account or a namespace",
			Impact:   invoke.ImpactHigh,
			Target:   "DataShareArn",
			PassThru: "DataShareArn",
			Select:   "*",
			Params: []invoke.Param[redshift.DisassociateDataShareConsumerInput]{
				dataShareArn(func(in *redshift.DisassociateDataShareConsumerInput) **string { return &in.DataShareArn }),
				invoke.Bool("DisassociateEntireAccount", func(in *redshift.DisassociateDataShareConsumerInput) **bool { return &in.DisassociateEntireAccount }),
				invoke.String("ConsumerArn", func(in *redshift.DisassociateDataShareConsumerInput) **string { return &in.ConsumerArn }).
					Length(1, arnMaxLength).Pattern(arnPattern),
				invoke.String("ConsumerRegion", func(in *redshift.DisassociateDataShareConsumerInput) **string { return &in.ConsumerRegion }),
			},
			Fields: dataShareFields(
				func(out *redshift.DisassociateDataShareConsumerOutput) *string { return out.DataShareArn },
				func(out *redshift.DisassociateDataShareConsumerOutput) *string { return out.ProducerArn },
				func(out *redshift.DisassociateDataShareConsumerOutput) *bool { return out.AllowPubliclyAccessibleConsumers },
				func(out *redshift.DisassociateDataShareConsumerOutput) []types.DataShareAssociation { return out.DataShareAssociations },
				func(out *redshift.DisassociateDataShareConsumerOutput) *string { return out.ManagedBy },
			),
			Call: call(API.DisassociateDataShareConsumer),
		},
		&operation[redshift.RejectDataShareInput, redshift.RejectDataShareOutput]{
			Name:     "RejectDataShare",
			Group:    groupDatashare,
			Verb:     "reject",
			Summary:  "Reject a datashare offered to the calling account",
			Impact:   invoke.ImpactMedium,
			Target:   "DataShareArn",
			PassThru: "DataShareArn",
			Select:   "*",
			Params: []invoke.Param[redshift.RejectDataShareInput]{
				dataShareArn(func(in *redshift.RejectDataShareInput) **string { return &in.DataShareArn }),
			},
			Fields: dataShareFields(
				func(out *redshift.RejectDataShareOutput) *string { return out.DataShareArn },
				func(out *redshift.RejectDataShareOutput) *string { return out.ProducerArn },
				func(out *redshift.RejectDataShareOutput) *bool { return out.AllowPubliclyAccessibleConsumers },
				func(out *redshift.RejectDataShareOutput) []types.DataShareAssociation { return out.DataShareAssociations },
				func(out *redshift.RejectDataShareOutput) *string { return out.ManagedBy },
			),
			Call: call(API.RejectDataShare),
		},
		&operation[redshift.DescribeDataSharesInput, redshift.DescribeDataSharesOutput]{
			Name:    "DescribeDataShares",
			Group:   groupDatashare,
			Verb:    "describe",
			Summary: "Describe datashares owned by or shared with the account",
			Select:  "DataShares",
			Params: []invoke.Param[redshift.DescribeDataSharesInput]{
				invoke.String("DataShareArn", func(in *redshift.DescribeDataSharesInput) **string { return &in.DataShareArn }).
					Alias("Arn").Length(1, arnMaxLength),
				invoke.Int32("MaxRecords", func(in *redshift.DescribeDataSharesInput) **int32 { return &in.MaxRecords }).
					Range(20, 100),
				invoke.String("Marker", func(in *redshift.DescribeDataSharesInput) **string { return &in.Marker }),
			},
			Fields: []invoke.Field[redshift.DescribeDataSharesOutput]{
				invoke.NewField("DataShares", func(out *redshift.DescribeDataSharesOutput) []types.DataShare { return out.DataShares }),
				invoke.NewField("Marker", func(out *redshift.DescribeDataSharesOutput) *string { return out.Marker }),
			},
			Call: call(API.DescribeDataShares),
		},
		&operation[redshift.DescribeDataSharesForConsumerInput, redshift.DescribeDataSharesForConsumerOutput]{
			Name:    "DescribeDataSharesForConsumer",
			Group:   groupDatashare,
			Verb:    "describe-for-consumer",
			Summary: "Describe datashares shared with a consumer",
			Select:  "DataShares",
			Params: []invoke.Param[redshift.DescribeDataSharesForConsumerInput]{
				invoke.String("ConsumerArn", func(in *redshift.DescribeDataSharesForConsumerInput) **string { return &in.ConsumerArn }).
					Length(1, arnMaxLength),
				invoke.Enum("Status", types.DataShareStatusForConsumer("").Values(),
					func(in *redshift.DescribeDataSharesForConsumerInput) *types.DataShareStatusForConsumer { return &in.Status }),
				invoke.Int32("MaxRecords", func(in *redshift.DescribeDataSharesForConsumerInput) **int32 { return &in.MaxRecords }).
					Range(20, 100),
				invoke.String("Marker", func(in *redshift.DescribeDataSharesForConsumerInput) **string { return &in.Marker }),
			},
			Fields: []invoke.Field[redshift.DescribeDataSharesForConsumerOutput]{
				invoke.NewField("DataShares", func(out *redshift.DescribeDataSharesForConsumerOutput) []types.DataShare { return out.DataShares }),
				invoke.NewField("Marker", func(out *redshift.DescribeDataSharesForConsumerOutput) *string { return out.Marker }),
			},
			Call: call(API.DescribeDataSharesForConsumer),
		},
		&operation[redshift.DescribeDataSharesForProducerInput, redshift.DescribeDataSharesForProducerOutput]{
			Name:    "DescribeDataSharesForProducer",
			Group:   groupDatashare,
			Verb:    "describe-for-producer",
			Summary: "Describe datashares created by a producer",
			Select:  "DataShares",
			Params: []invoke.Param[redshift.DescribeDataSharesForProducerInput]{
				invoke.String("ProducerArn", func(in *redshift.DescribeDataSharesForProducerInput) **string { return &in.ProducerArn }).
					Length(1, arnMaxLength),
				invoke.Enum("Status", types.DataShareStatusForProducer("").Values(),
					func(in *redshift.DescribeDataSharesForProducerInput) *types.DataShareStatusForProducer { return &in.Status }),
				invoke.Int32("MaxRecords", func(in *redshift.DescribeDataSharesForProducerInput) **int32 { return &in.MaxRecords }).
					Range(20, 100),
				invoke.String("Marker", func(in *redshift.DescribeDataSharesForProducerInput) **string { return &in.Marker }),
			},
			Fields: []invoke.Field[redshift.DescribeDataSharesForProducerOutput]{
				invoke.NewField("DataShares", func(out *redshift.DescribeDataSharesForProducerOutput) []types.DataShare { return out.DataShares }),
				invoke.NewField("Marker", func(out *redshift.DescribeDataSharesForProducerOutput) *string { return out.Marker }),
			},
			Call: call(API.DescribeDataSharesForProducer),
		},
	}
}
