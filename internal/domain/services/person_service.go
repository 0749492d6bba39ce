package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/RealSujal/community-app/internal/domain/kinship"
	"github.com/RealSujal/community-app/internal/domain/models"
	"github.com/RealSujal/community-app/internal/infrastructure/config"
	Logger "github.com/RealSujal/community-app/pkg/logger"
)

// InterfacePersonService defines the family member service interface
type InterfacePersonService interface {
	Add(actorID uint, input PersonInput) (*models.Person, error)
	Get(personID uint) (*models.Person, error)
	Update(actorID, personID uint, input PersonInput) (*models.Person, error)
	Delete(actorID, personID uint) error
	List(filter PeopleFilter) ([]models.Person, error)
	AddRelation(personID, relatedToID uint, relationType string) (*models.Relation, error)
	Relations(personID uint) ([]RelationView, error)
	FamilyRelations(personID uint) (*FamilyRelations, error)
}

// PersonInput carries the editable fields of a family member
type PersonInput struct {
	FamilyID uint   `json:"family_id"`
	Name     string `json:"name"`
	Gender   string `json:"gender"`
	DOB      string `json:"dob"`
	Age      int    `json:"age"`
	Relation string `json:"relation"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// PeopleFilter narrows the people search. Zero values match everything.
type PeopleFilter struct {
	FamilyID uint
	Address  string
	Name     string
}

// RelationView is an explicit relation joined with the related person
type RelationView struct {
	RelationType      string `json:"relation_type"`
	SelfRelation      string `json:"self_relation"`
	RelatedPersonID   uint   `json:"related_person_id"`
	RelatedPersonName string `json:"related_person_name"`
	Age               int    `json:"age"`
	Gender            string `json:"gender"`
	Phone             string `json:"phone"`
	Address           string `json:"address"`
}

// FamilyRelationSelf identifies the viewed person
type FamilyRelationSelf struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	RelationToHead string `json:"relation_to_head"`
}

// FamilyRelation is another member as seen by the viewed person. ID is the
// member's user account, nil when the member has none.
type FamilyRelation struct {
	ID                   *uint  `json:"id"`
	Name                 string `json:"name"`
	Relation             string `json:"relation"`
	MemberRelationToHead string `json:"member_relation_to_head"`
}

// FamilyRelations is the family tree from one member's perspective
type FamilyRelations struct {
	Self      FamilyRelationSelf `json:"self"`
	Relations []FamilyRelation   `json:"relations"`
}

// PersonService manages the members of family trees
type PersonService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewPersonService creates a new person service
func NewPersonService(db *gorm.DB, cfg *config.Config) InterfacePersonService {
	return &PersonService{
		DB:     db,
		Config: cfg,
	}
}

func optionalEmail(email string) *string {
	email = NormalizeEmail(email)
	if email == "" {
		return nil
	}
	return &email
}

// canEdit reports whether actorID registered familyID or belongs to it
func canEdit(db *gorm.DB, actorID, familyID uint) (bool, error) {
	var count int64
	if err := db.Model(&models.Family{}).Where("id = ? AND user_id = ?", familyID, actorID).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := db.Model(&models.User{}).Where("id = ? AND family_id = ?", actorID, familyID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// familyOf picks the family to add to: the requested one, else the actor's
func familyOf(tx *gorm.DB, actorID, requested uint) (*models.Family, error) {
	var family models.Family
	var err error
	switch {
	case requested != 0:
		err = tx.First(&family, requested).Error
	default:
		var user models.User
		if err := tx.Select("id, family_id").First(&user, actorID).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if user.FamilyID != nil {
			err = tx.First(&family, *user.FamilyID).Error
		} else {
			err = tx.Where("user_id = ?", actorID).Order("id").First(&family).Error
		}
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFamilyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &family, nil
}

// 1 Add inserts a member. An existing account with the same email is linked
// to the family, and the first member back-fills the family's head fields.
func (s *PersonService) Add(actorID uint, input PersonInput) (*models.Person, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	email := optionalEmail(input.Email)

	var person *models.Person
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		family, err := familyOf(tx, actorID, input.FamilyID)
		if err != nil {
			return err
		}
		ok, err := canEdit(tx, actorID, family.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrForbidden
		}

		if email != nil {
			var dup int64
			if err := tx.Model(&models.Person{}).Where("email = ? AND family_id = ?", *email, family.ID).Count(&dup).Error; err != nil {
				return err
			}
			if dup > 0 {
				return ErrPersonDuplicate
			}
		}

		var linkedUserID *uint
		if email != nil {
			var user models.User
			err := tx.Select("id").Where("email = ?", *email).First(&user).Error
			if err == nil {
				linkedUserID = &user.ID
				if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Update("family_id", family.ID).Error; err != nil {
					return err
				}
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		address := strings.TrimSpace(input.Address)
		if address == "" {
			address = family.Address
		}

		person = &models.Person{
			FamilyID:      family.ID,
			Name:          strings.TrimSpace(input.Name),
			Relation:      strings.ToLower(strings.TrimSpace(input.Relation)),
			Gender:        input.Gender,
			DOB:           input.DOB,
			Age:           input.Age,
			Phone:         strings.TrimSpace(input.Phone),
			Address:       address,
			Email:         email,
			UserID:        linkedUserID,
			AddedByUserID: actorID,
		}
		if err := tx.Create(person).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Person{}).Where("family_id = ?", family.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 1 {
			return tx.Model(family).Updates(map[string]interface{}{
				"head_name":      person.Name,
				"contact_number": person.Phone,
			}).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return person, nil
}

// 2 Get returns one member
func (s *PersonService) Get(personID uint) (*models.Person, error) {
	var person models.Person
	if err := s.DB.First(&person, personID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonNotFound
		}
		return nil, err
	}
	return &person, nil
}

// 3 Update overwrites the editable fields of a member
func (s *PersonService) Update(actorID, personID uint, input PersonInput) (*models.Person, error) {
	person, err := s.Get(personID)
	if err != nil {
		return nil, err
	}
	ok, err := canEdit(s.DB, actorID, person.FamilyID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	err = s.DB.Model(person).Updates(map[string]interface{}{
		"name":     strings.TrimSpace(input.Name),
		"gender":   input.Gender,
		"dob":      input.DOB,
		"age":      input.Age,
		"relation": strings.ToLower(strings.TrimSpace(input.Relation)),
		"address":  strings.TrimSpace(input.Address),
		"phone":    strings.TrimSpace(input.Phone),
		"email":    optionalEmail(input.Email),
	}).Error
	if err != nil {
		return nil, err
	}
	return s.Get(personID)
}

// 4 Delete removes a member, its explicit relations and the account link
func (s *PersonService) Delete(actorID, personID uint) error {
	person, err := s.Get(personID)
	if err != nil {
		return err
	}
	ok, err := canEdit(s.DB, actorID, person.FamilyID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("person_id = ? OR related_to_id = ?", personID, personID).Delete(&models.Relation{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(person).Error; err != nil {
			return err
		}
		if person.UserID != nil {
			if err := tx.Model(&models.User{}).Where("id = ?", *person.UserID).Update("family_id", nil).Error; err != nil {
				return err
			}
			Logger.Info("user %d unlinked from family %d", *person.UserID, person.FamilyID)
		}
		return nil
	})
}

// 5 List searches members by family, address and name
func (s *PersonService) List(filter PeopleFilter) ([]models.Person, error) {
	query := s.DB.Model(&models.Person{})
	if filter.FamilyID != 0 {
		query = query.Where("family_id = ?", filter.FamilyID)
	}
	if address := strings.TrimSpace(filter.Address); address != "" {
		query = query.Where("address LIKE ?", "%"+address+"%")
	}
	if name := strings.TrimSpace(filter.Name); name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}
	people := []models.Person{}
	err := query.Order("id").Find(&people).Error
	return people, err
}

// 6 AddRelation records an explicit link between two members
func (s *PersonService) AddRelation(personID, relatedToID uint, relationType string) (*models.Relation, error) {
	relationType = strings.ToLower(strings.TrimSpace(relationType))
	if personID == 0 || relatedToID == 0 || relationType == "" {
		return nil, fmt.Errorf("%w: all relation fields are required", ErrInvalidInput)
	}
	if personID == relatedToID {
		return nil, fmt.Errorf("%w: a person cannot be related to itself", ErrInvalidInput)
	}

	var count int64
	if err := s.DB.Model(&models.Person{}).Where("id IN ?", []uint{personID, relatedToID}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count != 2 {
		return nil, ErrPersonNotFound
	}

	relation := &models.Relation{PersonID: personID, RelatedToID: relatedToID, RelationType: relationType}
	if err := s.DB.Create(relation).Error; err != nil {
		return nil, err
	}
	return relation, nil
}

// 7 Relations lists the explicit relations of personID
func (s *PersonService) Relations(personID uint) ([]RelationView, error) {
	var rows []models.Relation
	err := s.DB.Preload("RelatedTo").
		Where("person_id = ? AND related_to_id <> ?", personID, personID).
		Order("id").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	views := make([]RelationView, 0, len(rows))
	for _, r := range rows {
		if r.RelatedTo == nil {
			continue
		}
		p := r.RelatedTo
		views = append(views, RelationView{
			RelationType:      r.RelationType,
			SelfRelation:      p.Relation,
			RelatedPersonID:   p.ID,
			RelatedPersonName: p.Name,
			Age:               p.Age,
			Gender:            p.Gender,
			Phone:             p.Phone,
			Address:           p.Address,
		})
	}
	return views, nil
}

// 8 FamilyRelations labels every other member of personID's family from
// personID's perspective
func (s *PersonService) FamilyRelations(personID uint) (*FamilyRelations, error) {
	person, err := s.Get(personID)
	if err != nil {
		return nil, err
	}
	members, err := familyMembers(s.DB, person.FamilyID)
	if err != nil {
		return nil, err
	}

	result := &FamilyRelations{
		Self: FamilyRelationSelf{
			ID:             person.ID,
			Name:           person.Name,
			RelationToHead: person.Relation,
		},
		Relations: make([]FamilyRelation, 0, len(members)),
	}
	for _, m := range members {
		if m.ID == person.ID {
			continue
		}
		result.Relations = append(result.Relations, FamilyRelation{
			ID:                   m.UserID,
			Name:                 m.Name,
			Relation:             kinship.Resolve(person.Relation, m.Relation),
			MemberRelationToHead: m.Relation,
		})
	}
	return result, nil
}
