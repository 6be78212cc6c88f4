package validators

import "go.mongodb.org/mongo-driver/bson"

var ReservationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"customerName",
			"customerPhone",
			"date",
			"period",
			"pack",
			"typePhotographie",
			"teamPreference",
			"invoice",
			"status",
			"createdAt",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"customerName": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"customerPhone": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 20,
			},

			"customerEmail": bson.M{
				"bsonType":  "string",
				"maxLength": 100,
			},

			"date": bson.M{
				"bsonType": "date",
			},

			"period": bson.M{
				"bsonType": "string",
				"enum": []string{
					"morning",
					"evening",
				},
			},

			"pack": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"typePhotographie": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"teamPreference": bson.M{
				"bsonType": "string",
				"enum": []string{
					"females",
					"males",
					"any",
				},
			},

			"assignedEmployers": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "string",
				},
			},

			"invoice": bson.M{
				"bsonType": "object",
				"required": []string{
					"packPrice",
					"totalPrice",
					"paidAmount",
					"remainingAmount",
				},
				"properties": bson.M{
					"packPrice": bson.M{
						"bsonType": []string{"double", "int", "long", "decimal"},
						"minimum":  0,
					},
					"additionalCharges": bson.M{
						"bsonType": []string{"double", "int", "long", "decimal"},
						"minimum":  0,
					},
					"discount": bson.M{
						"bsonType": []string{"double", "int", "long", "decimal"},
						"minimum":  0,
					},
					"totalPrice": bson.M{
						"bsonType": []string{"double", "int", "long", "decimal"},
						"minimum":  0,
					},
					"paidAmount": bson.M{
						"bsonType": []string{"double", "int", "long", "decimal"},
						"minimum":  0,
					},
					"remainingAmount": bson.M{
						"bsonType": []string{"double", "int", "long", "decimal"},
						"minimum":  0,
					},
				},
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"pending",
					"confirmed",
					"completed",
					"cancelled",
				},
			},

			"notes": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},

			"createdAt": bson.M{
				"bsonType": "date",
			},

			"updatedAt": bson.M{
				"bsonType": "date",
			},
		},
	},
}
