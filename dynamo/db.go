package dynamo

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	callTimeout = time.Second
)

type DB struct {
	dynamoClient *dynamodb.Client
	tableName    string
}

func NewDB(dynamoClient *dynamodb.Client, tableName string) *DB {
	return &DB{
		dynamoClient: dynamoClient,
		tableName:    tableName,
	}
}

func entityKey(pk string, sk string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}
}

func existingEntityConditional() expression.ConditionBuilder {
	return expression.Name("PK").AttributeExists()
}

func exprMustBuild(builder expression.Builder) expression.Expression {
	expr, err := builder.Build()
	if err != nil {
		panic("failed to build dynamo expression")
	}

	return expr
}
