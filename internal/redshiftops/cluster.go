// SPDX-License-Identifier: MPL-2.0

package redshiftops

import (
	"github.com/aws/aws-sdk-go-v2/service/redshift"
	"github.com/aws/aws-sdk-go-v2/service/redshift/types"

	"github.com/invowk/rsctl/internal/invoke"
)

const (
	groupCluster = "cluster"

	clusterIdentifierPattern = `^[a-zA-Z][a-zA-Z0-9-]*$`
	clusterTypePattern       = `^(single-node|multi-node)$`
)

func clusterField[Out any](get func(*Out) *types.Cluster) invoke.Field[Out] {
	return invoke.NewField("Cluster", get)
}

func clusterOperations() []Runner {
	return []Runner{
		&operation[redshift.CreateClusterInput, redshift.CreateClusterOutput]{
			Name:    "CreateCluster",
			Group:   groupCluster,
			Verb:    "create",
			Summary: "Create a new provisioned cluster",
			Impact:  invoke.ImpactLow,
			Target:  "ClusterIdentifier",
			Select:  "Cluster",
			Params: []invoke.Param[redshift.CreateClusterInput]{
				invoke.String("ClusterIdentifier", func(in *redshift.CreateClusterInput) **string { return &in.ClusterIdentifier }).
					Required().Alias("Id").Length(1, 63).Pattern(clusterIdentifierPattern).Describe("unique identifier of the cluster"),
				invoke.String("NodeType", func(in *redshift.CreateClusterInput) **string { return &in.NodeType }).
					Required().Describe("node type, e.g. ra3.xlplus"),
				invoke.String("MasterUsername", func(in *redshift.CreateClusterInput) **string { return &in.MasterUsername }).
					Required().Length(1, 128).Describe("admin user name for the initial database"),
				invoke.String("MasterUserPassword", func(in *redshift.CreateClusterInput) **string { return &in.MasterUserPassword }).
					Length(8, 64).Describe("admin user password"),
				invoke.Bool("ManageMasterPassword", func(in *redshift.CreateClusterInput) **bool { return &in.ManageMasterPassword }).
					Describe("store the admin password in Secrets Manager"),
				invoke.String("ClusterType", func(in *redshift.CreateClusterInput) **string { return &in.ClusterType }).
					Pattern(clusterTypePattern).Describe("single-node or multi-node"),
				invoke.Int32("NumberOfNodes", func(in *redshift.CreateClusterInput) **int32 { return &in.NumberOfNodes }).
					Range(1, 128).Describe("number of compute nodes (multi-node only)"),
				invoke.String("DBName", func(in *redshift.CreateClusterInput) **string { return &in.DBName }).
					Length(1, 64).Describe("name of the first database"),
				invoke.Int32("Port", func(in *redshift.CreateClusterInput) **int32 { return &in.Port }).
					Range(1115, 65535).Describe("port accepting connections"),
				invoke.Bool("PubliclyAccessible", func(in *redshift.CreateClusterInput) **bool { return &in.PubliclyAccessible }).
					Describe("allow access from outside the VPC"),
				invoke.Bool("Encrypted", func(in *redshift.CreateClusterInput) **bool { return &in.Encrypted }).
					Describe("encrypt data at rest"),
				invoke.String("KmsKeyId", func(in *redshift.CreateClusterInput) **string { return &in.KmsKeyId }).
					Describe("KMS key used for encryption"),
				invoke.String("ClusterSubnetGroupName", func(in *redshift.CreateClusterInput) **string { return &in.ClusterSubnetGroupName }).
					Describe("subnet group to launch the cluster in"),
				invoke.Strings("VpcSecurityGroupIds", func(in *redshift.CreateClusterInput) *[]string { return &in.VpcSecurityGroupIds }).
					Describe("VPC security groups (repeatable)"),
				invoke.Strings("IamRoles", func(in *redshift.CreateClusterInput) *[]string { return &in.IamRoles }).
					Items(0, 50).Describe("IAM role ARNs to associate (repeatable)"),
				invoke.String("DefaultIamRoleArn", func(in *redshift.CreateClusterInput) **string { return &in.DefaultIamRoleArn }),
				invoke.String("AvailabilityZone", func(in *redshift.CreateClusterInput) **string { return &in.AvailabilityZone }),
				invoke.Int32("AutomatedSnapshotRetentionPeriod", func(in *redshift.CreateClusterInput) **int32 { return &in.AutomatedSnapshotRetentionPeriod }).
					Range(0, 35),
				tagsParam(func(in *redshift.CreateClusterInput) *[]types.Tag { return &in.Tags }),
			},
			Fields: []invoke.Field[redshift.CreateClusterOutput]{
				clusterField(func(out *redshift.CreateClusterOutput) *types.Cluster { return out.Cluster }),
			},
			Call: call(API.CreateCluster),
		},
		&operation[redshift.DeleteClusterInput, redshift.DeleteClusterOutput]{
			Name:     "DeleteCluster",
			Group:    groupCluster,
			Verb:     "delete",
			Summary:  "Delete a provisioned cluster",
			Impact:   invoke.ImpactHigh,
			Target:   "ClusterIdentifier",
			PassThru: "ClusterIdentifier",
			Select:   "Cluster",
			Params: []invoke.Param[redshift.DeleteClusterInput]{
				invoke.String("ClusterIdentifier", func(in *redshift.DeleteClusterInput) **string { return &in.ClusterIdentifier }).
					Required().Alias("Id").Length(1, 63),
				invoke.Bool("SkipFinalClusterSnapshot", func(in *redshift.DeleteClusterInput) **bool { return &in.SkipFinalClusterSnapshot }).
					Describe("delete without taking a final snapshot"),
				invoke.String("FinalClusterSnapshotIdentifier", func(in *redshift.DeleteClusterInput) **string { return &in.FinalClusterSnapshotIdentifier }).
					Length(1, 255),
				invoke.Int32("FinalClusterSnapshotRetentionPeriod", func(in *redshift.DeleteClusterInput) **int32 { return &in.FinalClusterSnapshotRetentionPeriod }).
					Range(-1, 3653),
			},
			Fields: []invoke.Field[redshift.DeleteClusterOutput]{
				clusterField(func(out *redshift.DeleteClusterOutput) *types.Cluster { return out.Cluster }),
			},
			Call: call(API.DeleteCluster),
		},
		&operation[redshift.DescribeClustersInput, redshift.DescribeClustersOutput]{
			Name:    "DescribeClusters",
			Group:   groupCluster,
			Verb:    "describe",
			Summary: "Describe provisioned clusters",
			Select:  "Clusters",
			Params: []invoke.Param[redshift.DescribeClustersInput]{
				invoke.String("ClusterIdentifier", func(in *redshift.DescribeClustersInput) **string { return &in.ClusterIdentifier }).
					Alias("Id"),
				invoke.Int32("MaxRecords", func(in *redshift.DescribeClustersInput) **int32 { return &in.MaxRecords }).
					Range(20, 100),
				invoke.String("Marker", func(in *redshift.DescribeClustersInput) **string { return &in.Marker }).
					Describe("pagination token from a previous response"),
				invoke.Strings("TagKeys", func(in *redshift.DescribeClustersInput) *[]string { return &in.TagKeys }),
				invoke.Strings("TagValues", func(in *redshift.DescribeClustersInput) *[]string { return &in.TagValues }),
			},
			Fields: []invoke.Field[redshift.DescribeClustersOutput]{
				invoke.NewField("Clusters", func(out *redshift.DescribeClustersOutput) []types.Cluster { return out.Clusters }),
				invoke.NewField("Marker", func(out *redshift.DescribeClustersOutput) *string { return out.Marker }),
			},
			Call: call(API.DescribeClusters),
		},
		&operation[redshift.ModifyClusterInput, redshift.ModifyClusterOutput]{
			Name:    "ModifyCluster",
			Group:   groupCluster,
			Verb:    "modify",
			Summary: "Modify the settings of a cluster",
			Impact:  invoke.ImpactMedium,
			Target:  "ClusterIdentifier",
			Select:  "Cluster",
			Params: []invoke.Param[redshift.ModifyClusterInput]{
				invoke.String("ClusterIdentifier", func(in *redshift.ModifyClusterInput) **string { return &in.ClusterIdentifier }).
					Required().Alias("Id").Length(1, 63),
				invoke.String("NewClusterIdentifier", func(in *redshift.ModifyClusterInput) **string { return &in.NewClusterIdentifier }).
					Length(1, 63).Pattern(clusterIdentifierPattern),
				invoke.String("NodeType", func(in *redshift.ModifyClusterInput) **string { return &in.NodeType }),
				invoke.Int32("NumberOfNodes", func(in *redshift.ModifyClusterInput) **int32 { return &in.NumberOfNodes }).
					Range(1, 128),
				invoke.String("ClusterType", func(in *redshift.ModifyClusterInput) **string { return &in.ClusterType }).
					Pattern(clusterTypePattern),
				invoke.String("MasterUserPassword", func(in *redshift.ModifyClusterInput) **string { return &in.MasterUserPassword }).
					Length(8, 64),
				invoke.Bool("PubliclyAccessible", func(in *redshift.ModifyClusterInput) **bool { return &in.PubliclyAccessible }),
				invoke.Bool("Encrypted", func(in *redshift.ModifyClusterInput) **bool { return &in.Encrypted }),
				invoke.Int32("AutomatedSnapshotRetentionPeriod", func(in *redshift.ModifyClusterInput) **int32 { return &in.AutomatedSnapshotRetentionPeriod }).
					Range(0, 35),
				invoke.String("PreferredMaintenanceWindow", func(in *redshift.ModifyClusterInput) **string { return &in.PreferredMaintenanceWindow }).
					Describe("weekly window as ddd:hh24:mi-ddd:hh24:mi"),
				invoke.Strings("VpcSecurityGroupIds", func(in *redshift.ModifyClusterInput) *[]string { return &in.VpcSecurityGroupIds }),
			},
			Fields: []invoke.Field[redshift.ModifyClusterOutput]{
				clusterField(func(out *redshift.ModifyClusterOutput) *types.Cluster { return out.Cluster }),
			},
			Call: call(API.ModifyCluster),
		},
		&operation[redshift.RebootClusterInput, redshift.RebootClusterOutput]{
			Name:     "RebootCluster",
			Group:    groupCluster,
			Verb:     "reboot",
			Summary:  "Reboot a cluster",
			Impact:   invoke.ImpactMedium,
			Target:   "ClusterIdentifier",
			PassThru: "ClusterIdentifier",
			Select:   "Cluster",
			Params: []invoke.Param[redshift.RebootClusterInput]{
				invoke.String("ClusterIdentifier", func(in *redshift.RebootClusterInput) **string { return &in.ClusterIdentifier }).
					Required().Alias("Id").Length(1, 63),
			},
			Fields: []invoke.Field[redshift.RebootClusterOutput]{
				clusterField(func(out *redshift.RebootClusterOutput) *types.Cluster { return out.Cluster }),
			},
			Call: call(API.RebootCluster),
		},
		&operation[redshift.PauseClusterInput, redshift.PauseClusterOutput]{
			Name:     "PauseCluster",
			Group:    groupCluster,
			Verb:     "pause",
			Summary:  "Pause a cluster",
			Impact:   invoke.ImpactHigh,
			Target:   "ClusterIdentifier",
			PassThru: "ClusterIdentifier",
			Select:   "Cluster",
			Params: []invoke.Param[redshift.PauseClusterInput]{
				invoke.String("ClusterIdentifier", func(in *redshift.PauseClusterInput) **string { return &in.ClusterIdentifier }).
					Required().Alias("Id").Length(1, 63),
			},
			Fields: []invoke.Field[redshift.PauseClusterOutput]{
				clusterField(func(out *redshift.PauseClusterOutput) *types.Cluster { return out.Cluster }),
			},
			Call: call(API.PauseCluster),
		},
		&operation[redshift.ResumeClusterInput, redshift.ResumeClusterOutput]{
			Name:     "ResumeCluster",
			Group:    groupCluster,
			Verb:     "resume",
			Summary:  "Resume a paused cluster",
			Impact:   invoke.ImpactLow,
			Target:   "ClusterIdentifier",
			PassThru: "ClusterIdentifier",
			Select:   "Cluster",
			Params: []invoke.Param[redshift.ResumeClusterInput]{
				invoke.String("ClusterIdentifier", func(in *redshift.ResumeClusterInput) **string { return &in.ClusterIdentifier }).
					Required().Alias("Id").Length(1, 63),
			},
			Fields: []invoke.Field[redshift.ResumeClusterOutput]{
				clusterField(func(out *redshift.ResumeClusterOutput) *types.Cluster { return out.Cluster }),
			},
			Call: call(API.ResumeCluster),
		},
		&operation[redshift.ResizeClusterInput, redshift.ResizeClusterOutput]{
			Name:    "ResizeCluster",
			Group:   groupCluster,
			Verb:    "resize",
			Summary: "Change the node type or node count of a cluster",
			Impact:  invoke.ImpactMedium,
			Target:  "ClusterIdentifier",
			Select:  "Cluster",
			Params: []invoke.Param[redshift.ResizeClusterInput]{
				invoke.String("ClusterIdentifier", func(in *redshift.ResizeClusterInput) **string { return &in.ClusterIdentifier }).
					Required().Alias("Id").Length(1, 63),
				invoke.String("ClusterType", func(in *redshift.ResizeClusterInput) **string { return &in.ClusterType }).
					Pattern(clusterTypePattern),
				invoke.String("NodeType", func(in *redshift.ResizeClusterInput) **string { return &in.NodeType }),
				invoke.Int32("NumberOfNodes", func(in *redshift.ResizeClusterInput) **int32 { return &in.NumberOfNodes }).
					Range(1, 128),
				invoke.Bool("Classic", func(in *redshift.ResizeClusterInput) **bool { return &in.Classic }).
					Describe("use classic resize instead of elastic resize"),
			},
			Fields: []invoke.Field[redshift.ResizeClusterOutput]{
				clusterField(func(out *redshift.ResizeClusterOutput) *types.Cluster { return out.Cluster }),
			},
			Call: call(API.ResizeCluster),
		},
	}
}
