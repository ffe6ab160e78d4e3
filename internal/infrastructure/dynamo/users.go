package dynamo

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/Vishal-43/img-craft/internal/domain"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// UserRepo provides typed DynamoDB operations for the users table.
//
// Email and username uniqueness is held by marker items written in the same
// transaction as the user, so lookups by either go through a strongly
// consistent read of the marker and then of the user item.
type UserRepo struct {
	client    API
	tableName string
}

func NewUserRepo(client API, tableName string) *UserRepo {
	return &UserRepo{client: client, tableName: tableName}
}

// Put inserts a new user together with its email and username markers.
// Any of the three already existing cancels the whole write.
func (r *UserRepo) Put(ctx context.Context, u *domain.User) error {
	item, err := attributevalue.MarshalMap(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			r.putIfAbsent(item),
			r.putIfAbsent(markerItem(markerEmail+u.Email, u.UserID)),
			r.putIfAbsent(markerItem(markerUsername+u.Username, u.UserID)),
		},
	})
	var tce *types.TransactionCanceledException
	if errors.As(err, &tce) && conditionFailed(tce) {
		return fmt.Errorf("user %s, email or username already taken: %w", u.UserID, domain.ErrConflict)
	}
	return err
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getByMarker(ctx, markerUsername+username)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getByMarker(ctx, markerEmail+email)
}

// Update applies a partial update to the user and stamps updated_at.
func (r *UserRepo) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	fields := maps.Clone(updates)
	if fields == nil {
		fields = map[string]interface{}{}
	}
	fields[fieldUpdatedAt] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(fields)
	if err != nil {
		return err
	}
	ue.Names["#pk"] = fieldUserID
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey(fieldUserID, userID),
		UpdateExpression:          aws.String(ue.Expr),
		ConditionExpression:       aws.String("attribute_exists(#pk)"),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	return err
}

func (r *UserRepo) putIfAbsent(item map[string]types.AttributeValue) types.TransactWriteItem {
	return types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(r.tableName),
			Item:                item,
			ConditionExpression: aws.String("attribute_not_exists(#id)"),
			ExpressionAttributeNames: map[string]string{
				"#id": fieldUserID,
			},
		},
	}
}

func (r *UserRepo) getByMarker(ctx context.Context, markerID string) (*domain.User, error) {
	marker, err := r.getItem(ctx, markerID)
	if err != nil {
		return nil, err
	}
	owner, ok := marker[fieldOwnerID].(*types.AttributeValueMemberS)
	if !ok {
		return nil, fmt.Errorf("marker %s has no owner", markerID)
	}
	item, err := r.getItem(ctx, owner.Value)
	if err != nil {
		return nil, err
	}
	var u domain.User
	if err := attributevalue.UnmarshalMap(item, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) getItem(ctx context.Context, key string) (map[string]types.AttributeValue, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            strKey(fieldUserID, key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	return out.Item, nil
}

func markerItem(markerID, ownerID string) map[string]types.AttributeValue {
	item := strKey(fieldUserID, markerID)
	item[fieldOwnerID] = &types.AttributeValueMemberS{Value: ownerID}
	return item
}

// conditionFailed reports whether a cancelled transaction lost on one of its
// attribute_not_exists conditions rather than on throttling or a conflict.
func conditionFailed(tce *types.TransactionCanceledException) bool {
	for _, reason := range tce.CancellationReasons {
		if aws.ToString(reason.Code) == "ConditionalCheckFailed" {
			return true
		}
	}
	return false
}
