package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ascent-matrix/summit-registration/pricing"
	"github.com/ascent-matrix/summit-registration/registration"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var _ registration.Repository = &DB{}

type registrationDynamo struct {
	PK string
	SK string

	ID string

	FullName string
	Gender   string
	Phone    string
	Email    string
	City     string
	State    string

	Organization string
	Designation  string
	OrgType      string
	OrgTypeOther string

	Domains       []string
	DomainsOther  string
	EcosystemRole string
	Purposes      []string
	QUCInterest   registration.Interest

	StallType     pricing.StallType
	StallPrice    int64
	AttendeeCount int
	TotalAmount   int64

	PaymentStatus registration.PaymentStatus
	PaymentID     *string    `dynamodbav:",omitempty"`
	OrderID       *string    `dynamodbav:",omitempty"`
	PaidAt        *time.Time `dynamodbav:",omitempty"`

	RegistrationDate time.Time
	CheckedIn        bool
	TicketType       string
}

const (
	registrationEntityName = "REGISTRATION"
)

func registrationPK(id string) string {
	return fmt.Sprintf("%s#%s", registrationEntityName, id)
}

func registrationSK(id string) string {
	return fmt.Sprintf("%s#%s", registrationEntityName, id)
}

func registrationToDynamo(reg registration.Registration) registrationDynamo {
	return registrationDynamo{
		PK:               registrationPK(reg.ID),
		SK:               registrationSK(reg.ID),
		ID:               reg.ID,
		FullName:         reg.FullName,
		Gender:           reg.Gender,
		Phone:            reg.Phone,
		Email:            reg.Email,
		City:             reg.City,
		State:            reg.State,
		Organization:     reg.Organization,
		Designation:      reg.Designation,
		OrgType:          reg.OrgType,
		OrgTypeOther:     reg.OrgTypeOther,
		Domains:          nonNil(reg.Domains),
		DomainsOther:     reg.DomainsOther,
		EcosystemRole:    reg.EcosystemRole,
		Purposes:         nonNil(reg.Purposes),
		QUCInterest:      reg.QUCInterest,
		StallType:        reg.StallType,
		StallPrice:       reg.StallPrice,
		AttendeeCount:    reg.AttendeeCount,
		TotalAmount:      reg.TotalAmount,
		PaymentStatus:    reg.PaymentStatus,
		PaymentID:        reg.PaymentID,
		OrderID:          reg.OrderID,
		PaidAt:           reg.PaidAt,
		RegistrationDate: reg.RegistrationDate,
		CheckedIn:        reg.CheckedIn,
		TicketType:       reg.TicketType,
	}
}

func dynamoToRegistration(dynReg registrationDynamo) registration.Registration {
	return registration.Registration{
		ID:               dynReg.ID,
		FullName:         dynReg.FullName,
		Gender:           dynReg.Gender,
		Phone:            dynReg.Phone,
		Email:            dynReg.Email,
		City:             dynReg.City,
		State:            dynReg.State,
		Organization:     dynReg.Organization,
		Designation:      dynReg.Designation,
		OrgType:          dynReg.OrgType,
		OrgTypeOther:     dynReg.OrgTypeOther,
		Domains:          nonNil(dynReg.Domains),
		DomainsOther:     dynReg.DomainsOther,
		EcosystemRole:    dynReg.EcosystemRole,
		Purposes:         nonNil(dynReg.Purposes),
		QUCInterest:      dynReg.QUCInterest,
		StallType:        dynReg.StallType,
		StallPrice:       dynReg.StallPrice,
		AttendeeCount:    dynReg.AttendeeCount,
		TotalAmount:      dynReg.TotalAmount,
		PaymentStatus:    dynReg.PaymentStatus,
		PaymentID:        dynReg.PaymentID,
		OrderID:          dynReg.OrderID,
		PaidAt:           dynReg.PaidAt,
		RegistrationDate: dynReg.RegistrationDate,
		CheckedIn:        dynReg.CheckedIn,
		TicketType:       dynReg.TicketType,
	}
}

// registrationUpdate sets every attribute the record carries and leaves the rest of a stored item alone.
func registrationUpdate(dynReg registrationDynamo) expression.UpdateBuilder {
	update := expression.Set(expression.Name("ID"), expression.Value(dynReg.ID)).
		Set(expression.Name("FullName"), expression.Value(dynReg.FullName)).
		Set(expression.Name("Gender"), expression.Value(dynReg.Gender)).
		Set(expression.Name("Phone"), expression.Value(dynReg.Phone)).
		Set(expression.Name("Email"), expression.Value(dynReg.Email)).
		Set(expression.Name("City"), expression.Value(dynReg.City)).
		Set(expression.Name("State"), expression.Value(dynReg.State)).
		Set(expression.Name("Organization"), expression.Value(dynReg.Organization)).
		Set(expression.Name("Designation"), expression.Value(dynReg.Designation)).
		Set(expression.Name("OrgType"), expression.Value(dynReg.OrgType)).
		Set(expression.Name("OrgTypeOther"), expression.Value(dynReg.OrgTypeOther)).
		Set(expression.Name("Domains"), expression.Value(dynReg.Domains)).
		Set(expression.Name("DomainsOther"), expression.Value(dynReg.DomainsOther)).
		Set(expression.Name("EcosystemRole"), expression.Value(dynReg.EcosystemRole)).
		Set(expression.Name("Purposes"), expression.Value(dynReg.Purposes)).
		Set(expression.Name("QUCInterest"), expression.Value(dynReg.QUCInterest)).
		Set(expression.Name("StallType"), expression.Value(dynReg.StallType)).
		Set(expression.Name("StallPrice"), expression.Value(dynReg.StallPrice)).
		Set(expression.Name("AttendeeCount"), expression.Value(dynReg.AttendeeCount)).
		Set(expression.Name("TotalAmount"), expression.Value(dynReg.TotalAmount)).
		Set(expression.Name("PaymentStatus"), expression.Value(dynReg.PaymentStatus)).
		Set(expression.Name("RegistrationDate"), expression.Value(dynReg.RegistrationDate)).
		Set(expression.Name("CheckedIn"), expression.Value(dynReg.CheckedIn)).
		Set(expression.Name("TicketType"), expression.Value(dynReg.TicketType))

	if dynReg.PaymentID != nil {
		update = update.Set(expression.Name("PaymentID"), expression.Value(*dynReg.PaymentID))
	}
	if dynReg.OrderID != nil {
		update = update.Set(expression.Name("OrderID"), expression.Value(*dynReg.OrderID))
	}
	if dynReg.PaidAt != nil {
		update = update.Set(expression.Name("PaidAt"), expression.Value(*dynReg.PaidAt))
	}

	return update
}

// SaveRegistration creates the registration or merges its fields into the stored one.
// A registration that is already PAID is not rewritten.
func (d *DB) SaveRegistration(ctx context.Context, reg registration.Registration) error {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	dynamoReg := registrationToDynamo(reg)

	cond := expression.Name("PK").AttributeNotExists().
		Or(expression.Name("PaymentStatus").NotEqual(expression.Value(registration.PAYMENT_PAID)))

	expr, err := expression.NewBuilder().
		WithCondition(cond).
		WithUpdate(registrationUpdate(dynamoReg)).
		Build()
	if err != nil {
		return registration.NewFailedToTranslateToDBModelError("Failed to translate registration to dynamo update", err)
	}

	_, err = d.dynamoClient.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(d.tableName),
		Key:                       entityKey(dynamoReg.PK, dynamoReg.SK),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var condCheckFailedErr *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailedErr) {
			return registration.NewAlreadyPaidError(reg.ID, err)
		} else if errors.Is(err, context.DeadlineExceeded) {
			return registration.NewTimeoutError("SaveRegistration timed out")
		} else {
			return registration.NewFailedToWriteError(fmt.Sprintf("Failed to save registration %q", reg.ID), err)
		}
	}

	return nil
}

func (d *DB) GetRegistration(ctx context.Context, id string) (registration.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := d.dynamoClient.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.tableName),
		Key:       entityKey(registrationPK(id), registrationSK(id)),
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return registration.Registration{}, registration.NewTimeoutError("GetRegistration timed out")
		}
		return registration.Registration{}, registration.NewFailedToFetchError(fmt.Sprintf("Failed to fetch registration with id %q", id), err)
	}

	if len(resp.Item) == 0 {
		return registration.Registration{}, registration.NewRegistrationDoesNotExistsError(fmt.Sprintf("Registration with id %q not found", id), nil)
	}

	var dynReg registrationDynamo
	err = attributevalue.UnmarshalMap(resp.Item, &dynReg)
	if err != nil {
		return registration.Registration{}, registration.NewFailedToTranslateToDBModelError(fmt.Sprintf("Failed to read registration %q from dynamo", id), err)
	}

	return dynamoToRegistration(dynReg), nil
}

// UpdateRegistrationPayment writes the payment fields onto an existing registration.
// A registration already paid by a different payment is left untouched.
func (d *DB) UpdateRegistrationPayment(ctx context.Context, id string, update registration.PaymentUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	cond := existingEntityConditional().And(
		expression.Name("PaymentStatus").NotEqual(expression.Value(registration.PAYMENT_PAID)).
			Or(expression.Name("PaymentID").Equal(expression.Value(update.PaymentID))),
	)
	set := expression.Set(expression.Name("PaymentStatus"), expression.Value(update.PaymentStatus)).
		Set(expression.Name("PaymentID"), expression.Value(update.PaymentID)).
		Set(expression.Name("OrderID"), expression.Value(update.OrderID)).
		Set(expression.Name("PaidAt"), expression.Value(update.PaidAt))

	expr := exprMustBuild(expression.NewBuilder().WithCondition(cond).WithUpdate(set))

	_, err := d.dynamoClient.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                           aws.String(d.tableName),
		Key:                                 entityKey(registrationPK(id), registrationSK(id)),
		UpdateExpression:                    expr.Update(),
		ConditionExpression:                 expr.Condition(),
		ExpressionAttributeNames:            expr.Names(),
		ExpressionAttributeValues:           expr.Values(),
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		var condCheckFailedErr *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailedErr) {
			if len(condCheckFailedErr.Item) == 0 {
				return registration.NewRegistrationDoesNotExistsError(fmt.Sprintf("Registration with id %q not found", id), err)
			}
			return registration.NewAlreadyPaidError(id, err)
		} else if errors.Is(err, context.DeadlineExceeded) {
			return registration.NewTimeoutError("UpdateRegistrationPayment timed out")
		} else {
			return registration.NewFailedToWriteError(fmt.Sprintf("Failed to update payment for registration %q", id), err)
		}
	}

	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
