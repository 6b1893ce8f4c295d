package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"repair_pricing/internal/domain/entities"
	mock_database "repair_pricing/internal/infrastructure/database/mocks"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

var testTables = CatalogTables{Prices: "prices", DeviceModels: "device_models", RepairTypes: "repair_types"}

func mustMarshal(t *testing.T, v any) map[string]types.AttributeValue {
	t.Helper()
	av, err := attributevalue.MarshalMap(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return av
}

func testPrice(dev uint, q entities.PartQuality, total string, estimated bool) entities.Price {
	p := entities.Price{
		Key:        entities.PriceKey{DeviceModelID: dev, RepairTypeID: 7, PartQuality: q},
		TotalPrice: decimal.RequireFromString(total),
		CreatedAt:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if estimated {
		c := 0.5
		p.IsEstimated = true
		p.ConfidenceScore = &c
	}
	return p
}

func TestCatalogDynamoRepository_GetDeviceModel(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ddb := mock_database.NewMockDynamoDBAPI(ctrl)
		repo := NewCatalogDynamoRepository(ddb, testTables)

		item := mustMarshal(t, deviceModelItem{ID: 10, BrandID: 1, BrandName: "Alpha", BrandPrimary: true, TierLevel: 3, ReleaseYear: 2023, Category: "phone"})
		ddb.EXPECT().GetItem(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
				if aws.ToString(in.TableName) != "device_models" {
					t.Fatalf("unexpected table %s", aws.ToString(in.TableName))
				}
				if n, ok := in.Key["id"].(*types.AttributeValueMemberN); !ok || n.Value != "10" {
					t.Fatalf("unexpected key: %+v", in.Key)
				}
				return &dynamodb.GetItemOutput{Item: item}, nil
			},
		)

		m, err := repo.GetDeviceModel(context.Background(), 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.ID != 10 || m.Brand.Name != "Alpha" || !m.Brand.Primary || m.HasReleaseMonth() {
			t.Fatalf("unexpected model: %+v", m)
		}
	})

	t.Run("absent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ddb := mock_database.NewMockDynamoDBAPI(ctrl)
		repo := NewCatalogDynamoRepository(ddb, testTables)

		ddb.EXPECT().GetItem(gomock.Any(), gomock.Any()).Return(&dynamodb.GetItemOutput{}, nil)

		m, err := repo.GetDeviceModel(context.Background(), 10)
		if err != nil || m.ID != 0 {
			t.Fatalf("expected zero model, got %+v %v", m, err)
		}
	})

	t.Run("error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ddb := mock_database.NewMockDynamoDBAPI(ctrl)
		repo := NewCatalogDynamoRepository(ddb, testTables)

		ddb.EXPECT().GetItem(gomock.Any(), gomock.Any()).Return(nil, errors.New("ddb"))

		if _, err := repo.GetDeviceModel(context.Background(), 10); err == nil || err.Error() != "ddb" {
			t.Fatalf("expected ddb error, got %v", err)
		}
	})
}

func TestCatalogDynamoRepository_ListPricesForDeviceAcrossQualities(t *testing.T) {
	ctrl := gomock.NewController(t)
	ddb := mock_database.NewMockDynamoDBAPI(ctrl)
	repo := NewCatalogDynamoRepository(ddb, testTables)

	first := mustMarshal(t, toPriceItem(testPrice(10, entities.PartQualityStandard, "120.00", false)))
	second := mustMarshal(t, toPriceItem(testPrice(10, entities.PartQualityOEM, "190.00", true)))
	cursor := map[string]types.AttributeValue{"price_key": &types.AttributeValueMemberS{Value: "10#7"}}

	gomock.InOrder(
		ddb.EXPECT().Query(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
				pk := in.ExpressionAttributeValues[":pk"].(*types.AttributeValueMemberS)
				if pk.Value != "10#7" || in.ExclusiveStartKey != nil {
					t.Fatalf("unexpected first query: %+v", in)
				}
				return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{first}, LastEvaluatedKey: cursor}, nil
			},
		),
		ddb.EXPECT().Query(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
				if in.ExclusiveStartKey == nil {
					t.Fatalf("expected continuation key")
				}
				return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{second}}, nil
			},
		),
	)

	prices, err := repo.ListPricesForDeviceAcrossQualities(context.Background(), 10, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prices) != 2 || prices[0].IsEstimated || !prices[1].IsEstimated || *prices[1].ConfidenceScore != 0.5 {
		t.Fatalf("unexpected prices: %+v", prices)
	}
	if !prices[0].TotalPrice.Equal(decimal.NewFromInt(120)) || prices[0].PartsCost.Valid {
		t.Fatalf("unexpected decoded price: %+v", prices[0])
	}
}

func TestCatalogDynamoRepository_ListDeviceModelsByCategory(t *testing.T) {
	ctrl := gomock.NewController(t)
	ddb := mock_database.NewMockDynamoDBAPI(ctrl)
	repo := NewCatalogDynamoRepository(ddb, testTables)

	ddb.EXPECT().Scan(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
			cat := in.ExpressionAttributeValues[":category"].(*types.AttributeValueMemberS)
			if cat.Value != "tablet" {
				t.Fatalf("unexpected category filter %q", cat.Value)
			}
			return &dynamodb.ScanOutput{Items: []map[string]types.AttributeValue{
				mustMarshal(t, deviceModelItem{ID: 31, Category: "tablet", Active: false}),
				mustMarshal(t, deviceModelItem{ID: 30, Category: "tablet", Active: true, ReleaseMonth: 4}),
			}}, nil
		},
	)

	models, err := repo.ListDeviceModelsByCategory(context.Background(), entities.DeviceCategoryTablet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(models) != 2 || models[0].ID != 30 || models[1].ID != 31 || models[0].ReleaseMonth != 4 {
		t.Fatalf("unexpected models: %+v", models)
	}
}

func TestCatalogDynamoRepository_ListPricesForModelsAndRepair(t *testing.T) {
	t.Run("chunks keys and retries unprocessed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ddb := mock_database.NewMockDynamoDBAPI(ctrl)
		repo := NewCatalogDynamoRepository(ddb, testTables)

		ids := make([]uint, 0, 150)
		for i := uint(1); i <= 150; i++ {
			ids = append(ids, i)
		}
		ids = append(ids, 1)

		var calls int
		ddb.EXPECT().BatchGetItem(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in *dynamodb.BatchGetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchGetItemOutput, error) {
				calls++
				keys := in.RequestItems["prices"].Keys
				switch calls {
				case 1:
					if len(keys) != 100 {
						t.Fatalf("expected 100 keys, got %d", len(keys))
					}
					return &dynamodb.BatchGetItemOutput{
						Responses: map[string][]map[string]types.AttributeValue{
							"prices": {mustMarshal(t, toPriceItem(testPrice(42, entities.PartQualityStandard, "80.00", false)))},
						},
						UnprocessedKeys: map[string]types.KeysAndAttributes{
							"prices": {Keys: keys[:1]},
						},
					}, nil
				case 2:
					if len(keys) != 1 {
						t.Fatalf("expected retry of 1 key, got %d", len(keys))
					}
					return &dynamodb.BatchGetItemOutput{
						Responses: map[string][]map[string]types.AttributeValue{
							"prices": {mustMarshal(t, toPriceItem(testPrice(1, entities.PartQualityStandard, "90.00", false)))},
						},
					}, nil
				default:
					if len(keys) != 50 {
						t.Fatalf("expected 50 keys, got %d", len(keys))
					}
					return &dynamodb.BatchGetItemOutput{}, nil
				}
			},
		).Times(3)

		prices, err := repo.ListPricesForModelsAndRepair(context.Background(), ids, 7, entities.PartQualityStandard)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(prices) != 2 || prices[0].Key.DeviceModelID != 1 || prices[1].Key.DeviceModelID != 42 {
			t.Fatalf("unexpected prices: %+v", prices)
		}
	})

	t.Run("gives up on persistent unprocessed keys", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ddb := mock_database.NewMockDynamoDBAPI(ctrl)
		repo := NewCatalogDynamoRepository(ddb, testTables)

		ddb.EXPECT().BatchGetItem(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in *dynamodb.BatchGetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchGetItemOutput, error) {
				return &dynamodb.BatchGetItemOutput{UnprocessedKeys: in.RequestItems}, nil
			},
		).Times(maxBatchGetAttempts)

		_, err := repo.ListPricesForModelsAndRepair(context.Background(), []uint{1}, 7, entities.PartQualityStandard)
		if !errors.Is(err, ErrUnprocessedKeys) {
			t.Fatalf("expected ErrUnprocessedKeys, got %v", err)
		}
	})

	t.Run("no ids", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ddb := mock_database.NewMockDynamoDBAPI(ctrl)
		repo := NewCatalogDynamoRepository(ddb, testTables)

		prices, err := repo.ListPricesForModelsAndRepair(context.Background(), nil, 7, entities.PartQualityStandard)
		if err != nil || len(prices) != 0 {
			t.Fatalf("expected no prices, got %+v %v", prices, err)
		}
	})
}

func TestCatalogDynamoRepository_UpsertEstimatedPrice(t *testing.T) {
	estimate := testPrice(10, entities.PartQualityOEM, "192.00", true)
	estimate.PartsCost = decimal.NewNullDecimal(decimal.RequireFromString("128.00"))

	t.Run("written", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ddb := mock_database.NewMockDynamoDBAPI(ctrl)
		repo := NewCatalogDynamoRepository(ddb, testTables)

		ddb.EXPECT().UpdateItem(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
				if aws.ToString(in.ConditionExpression) != "attribute_not_exists(#pk) OR #is_estimated = :true" {
					t.Fatalf("unexpected condition %q", aws.ToString(in.ConditionExpression))
				}
				expr := aws.ToString(in.UpdateExpression)
				if !strings.Contains(expr, "if_not_exists(#created_at, :now)") || !strings.Contains(expr, "#parts_cost = :parts_cost") {
					t.Fatalf("unexpected update expression %q", expr)
				}
				if !strings.Contains(expr, "REMOVE #labor_cost") {
					t.Fatalf("expected labor_cost removal in %q", expr)
				}
				if !strings.Contains(expr, "#confidence_score = :confidence_score") {
					t.Fatalf("expected confidence_score in %q", expr)
				}
				n, ok := in.ExpressionAttributeValues[":confidence_score"].(*types.AttributeValueMemberN)
				if !ok || n.Value != "0.5" {
					t.Fatalf("unexpected confidence value %#v", in.ExpressionAttributeValues[":confidence_score"])
				}
				return &dynamodb.UpdateItemOutput{Attributes: mustMarshal(t, toPriceItem(estimate))}, nil
			},
		)

		stored, persisted, err := repo.UpsertEstimatedPrice(context.Background(), estimate)
		if err != nil || !persisted {
			t.Fatalf("expected persisted, got %v %v", persisted, err)
		}
		if !stored.TotalPrice.Equal(decimal.NewFromInt(192)) || !stored.PartsCost.Valid {
			t.Fatalf("unexpected stored price: %+v", stored)
		}
	})

	t.Run("row without confidence removes the attribute", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ddb := mock_database.NewMockDynamoDBAPI(ctrl)
		repo := NewCatalogDynamoRepository(ddb, testTables)

		bare := estimate
		bare.ConfidenceScore = nil
		ddb.EXPECT().UpdateItem(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
				expr := aws.ToString(in.UpdateExpression)
				if !strings.Contains(expr, "REMOVE #labor_cost, #confidence_score") {
					t.Fatalf("expected confidence_score removal in %q", expr)
				}
				if _, ok := in.ExpressionAttributeValues[":confidence_score"]; ok {
					t.Fatalf("confidence_score must not be set")
				}
				if b, ok := in.ExpressionAttributeValues[":is_estimated"].(*types.AttributeValueMemberBOOL); !ok || !b.Value {
					t.Fatalf("expected is_estimated=true")
				}
				return &dynamodb.UpdateItemOutput{Attributes: mustMarshal(t, toPriceItem(bare))}, nil
			},
		)

		if _, persisted, err := repo.UpsertEstimatedPrice(context.Background(), bare); err != nil || !persisted {
			t.Fatalf("expected persisted, got %v %v", persisted, err)
		}
	})

	t.Run("authoritative item returned by failed condition", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ddb := mock_database.NewMockDynamoDBAPI(ctrl)
		repo := NewCatalogDynamoRepository(ddb, testTables)

		authoritative := mustMarshal(t, toPriceItem(testPrice(10, entities.PartQualityOEM, "175.00", false)))
		ddb.EXPECT().UpdateItem(gomock.Any(), gomock.Any()).Return(nil, &types.ConditionalCheckFailedException{Item: authoritative})

		stored, persisted, err := repo.UpsertEstimatedPrice(context.Background(), estimate)
		if err != nil || persisted {
			t.Fatalf("expected conflict without error, got %v %v", persisted, err)
		}
		if stored.IsEstimated || !stored.TotalPrice.Equal(decimal.NewFromInt(175)) {
			t.Fatalf("unexpected stored price: %+v", stored)
		}
	})

	t.Run("failed condition without item reads the row", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ddb := mock_database.NewMockDynamoDBAPI(ctrl)
		repo := NewCatalogDynamoRepository(ddb, testTables)

		ddb.EXPECT().UpdateItem(gomock.Any(), gomock.Any()).Return(nil, &types.ConditionalCheckFailedException{})
		ddb.EXPECT().GetItem(gomock.Any(), gomock.Any()).Return(&dynamodb.GetItemOutput{
			Item: mustMarshal(t, toPriceItem(testPrice(10, entities.PartQualityOEM, "175.00", false))),
		}, nil)

		stored, persisted, err := repo.UpsertEstimatedPrice(context.Background(), estimate)
		if err != nil || persisted || !stored.Authoritative() {
			t.Fatalf("unexpected result: %+v %v %v", stored, persisted, err)
		}
	})

	t.Run("storage error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ddb := mock_database.NewMockDynamoDBAPI(ctrl)
		repo := NewCatalogDynamoRepository(ddb, testTables)

		ddb.EXPECT().UpdateItem(gomock.Any(), gomock.Any()).Return(nil, errors.New("throttled"))

		if _, _, err := repo.UpsertEstimatedPrice(context.Background(), estimate); err == nil || err.Error() != "throttled" {
			t.Fatalf("expected throttled error, got %v", err)
		}
	})
}
