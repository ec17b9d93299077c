package validators

import "go.mongodb.org/mongo-driver/bson"

var VisitValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"pet_id",
			"status",
			"visit_at_utc",
			"state_id",
			"purchaser_name",
			"phone",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"pet_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"status": bson.M{
				"enum": []string{"OPEN", "CLAIMED", "COMPLETED", "CANCELLED"},
			},

			"outcome": bson.M{
				"enum": []string{"PASS", "FAIL"},
			},

			"created_by_id": bson.M{
				"bsonType": "string",
			},

			"claimed_by_id": bson.M{
				"bsonType": "string",
			},

			"visit_at_utc": bson.M{
				"bsonType": "date",
			},

			"visit_at_local": bson.M{
				"bsonType": "string",
			},

			"tz": bson.M{
				"bsonType": "string",
			},

			"tz_offset_minutes": bson.M{
				"bsonType": []string{"int", "long", "double"},
			},

			"state_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 40,
			},

			"purchaser_name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"phone": bson.M{
				"bsonType":  "string",
				"minLength": 7,
				"maxLength": 20,
			},

			"location_note": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},

			"comment": bson.M{
				"bsonType":  "string",
				"maxLength": 4000,
			},

			"background_check_done": bson.M{
				"bsonType": "bool",
			},

			"completed_at": bson.M{
				"bsonType": "date",
			},

			"completed_by": bson.M{
				"bsonType": "object",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
