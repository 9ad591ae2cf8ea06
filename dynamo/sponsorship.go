package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ascent-matrix/summit-registration/sponsorship"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

var _ sponsorship.Repository = &DB{}

type sponsorshipDynamo struct {
	PK string
	SK string

	ID           string
	ContactName  string
	Organization string
	Email        string
	Phone        string
	Tier         string
	Message      string
	Details      map[string]string `dynamodbav:",omitempty"`
	SubmittedAt  time.Time
}

const (
	sponsorshipEntityName = "SPONSORSHIP"
)

func sponsorshipPK(id string) string {
	return fmt.Sprintf("%s#%s", sponsorshipEntityName, id)
}

func sponsorshipSK(id string) string {
	return fmt.Sprintf("%s#%s", sponsorshipEntityName, id)
}

func sponsorshipToDynamo(inq sponsorship.Inquiry) sponsorshipDynamo {
	return sponsorshipDynamo{
		PK:           sponsorshipPK(inq.ID),
		SK:           sponsorshipSK(inq.ID),
		ID:           inq.ID,
		ContactName:  inq.ContactName,
		Organization: inq.Organization,
		Email:        inq.Email,
		Phone:        inq.Phone,
		Tier:         inq.Tier,
		Message:      inq.Message,
		Details:      inq.Details,
		SubmittedAt:  inq.SubmittedAt,
	}
}

func dynamoToSponsorship(dynInq sponsorshipDynamo) sponsorship.Inquiry {
	return sponsorship.Inquiry{
		ID:           dynInq.ID,
		ContactName:  dynInq.ContactName,
		Organization: dynInq.Organization,
		Email:        dynInq.Email,
		Phone:        dynInq.Phone,
		Tier:         dynInq.Tier,
		Message:      dynInq.Message,
		Details:      dynInq.Details,
		SubmittedAt:  dynInq.SubmittedAt,
	}
}

func (d *DB) SaveSponsorship(ctx context.Context, inq sponsorship.Inquiry) error {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	item, err := attributevalue.MarshalMap(sponsorshipToDynamo(inq))
	if err != nil {
		return sponsorship.NewError(sponsorship.REASON_FAILED_TO_TRANSLATE_TO_DB_MODEL, "Failed to convert Inquiry to sponsorshipDynamo", err)
	}

	_, err = d.dynamoClient.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.tableName),
		Item:      item,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return sponsorship.NewError(sponsorship.REASON_TIMEOUT, "SaveSponsorship timed out", nil)
		}
		return sponsorship.NewError(sponsorship.REASON_FAILED_TO_WRITE, "Failed PutItem call", err)
	}

	return nil
}

func (d *DB) GetSponsorship(ctx context.Context, id string) (sponsorship.Inquiry, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := d.dynamoClient.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.tableName),
		Key:       entityKey(sponsorshipPK(id), sponsorshipSK(id)),
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return sponsorship.Inquiry{}, sponsorship.NewError(sponsorship.REASON_TIMEOUT, "GetSponsorship timed out", nil)
		}
		return sponsorship.Inquiry{}, sponsorship.NewError(sponsorship.REASON_FAILED_TO_FETCH, fmt.Sprintf("Failed to fetch sponsorship with id %q", id), err)
	}

	if len(resp.Item) == 0 {
		return sponsorship.Inquiry{}, sponsorship.NewError(sponsorship.REASON_SPONSORSHIP_DOES_NOT_EXIST, fmt.Sprintf("Sponsorship with id %q not found", id), nil)
	}

	var dynInq sponsorshipDynamo
	err = attributevalue.UnmarshalMap(resp.Item, &dynInq)
	if err != nil {
		return sponsorship.Inquiry{}, sponsorship.NewError(sponsorship.REASON_FAILED_TO_TRANSLATE_TO_DB_MODEL, fmt.Sprintf("Failed to read sponsorship %q from dynamo", id), err)
	}

	return dynamoToSponsorship(dynInq), nil
}
