// Package messages holds the Arabic user-facing message catalog.
//
// The portal's audience is Arabic-speaking; every validation and status
// message returned to a client comes from this catalog so wording stays in
// one place. Server-side logs remain in English.
package messages

// College messages.
const (
	CollegeNameRequired   = "لايمكن ان يكون الاسم فارغا"
	CollegeAlreadyCreated = "الكلية موجودة مسبقا"
	CollegeCreated        = "تم إضافة الكلية بنجاح"
	CollegeCreateFailed   = "فشل في إضافة الكلية"
	CollegeUpdated        = "تم تحديث بيانات الكلية بنجاح"
	CollegeUpdateFailed   = "فشل في تحديث بيانات الكلية"
	CollegeNotFound       = "الكلية غير موجودة"
	CollegeFetchError     = "حدث خطأ أثناء جلب بيانات الكليات"
)

// Specialization messages.
const (
	SpecializationNameRequired    = "اسم التخصص مطلوب"
	SpecializationCollegeRequired = "يجب تحديد الكلية التابع لها التخصص"
	SpecializationAlreadyCreated  = "التخصص موجود مسبقا"
	SpecializationCreated         = "تم إضافة التخصص بنجاح"
	SpecializationCreateFailed    = "فشل في إضافة التخصص"
	SpecializationUpdated         = "تم تحديث بيانات التخصص بنجاح"
	SpecializationUpdateFailed    = "فشل في تحديث بيانات التخصص"
	SpecializationNotFound        = "التخصص غير موجود"
	NoSpecializationsForCollege   = "لا توجد تخصصات لهذه الكلية"
	SpecializationFetchError      = "حدث خطأ أثناء جلب بيانات التخصصات"
)

// Course messages.
const (
	CourseTitleRequired          = "عنوان المادة مطلوب"
	CourseSpecializationRequired = "يجب تحديد تخصص المادة"
	CourseCreated                = "تم إضافة المادة بنجاح"
	CourseUpdated                = "تم تحديث بيانات المادة بنجاح"
	CourseNotFound               = "المادة غير موجودة"
	CourseFetchError             = "حدث خطأ أثناء جلب بيانات المواد"
)

// Notification messages. NotificationCooldown wording is preserved from the
// original product: a sender must wait for a reply before resubmitting.
const (
	NotificationContentRequired = "محتوى الإشعار مطلوب"
	NotificationAdded           = "تم إضافة إشعار بنجاح"
	NotificationSendFailed      = "فشل في إرسال الرسالة، حاول لاحقا"
	NotificationCooldown        = "هنالك رسالة حالية من نفس البريد  الألكتروني، إنتظر حتى يتم الرد عليها قبل الإرسال مرة أخرى"
)

// Bookmark messages.
const (
	BookmarkAdded        = "تم حفظ المادة بنجاح"
	BookmarkRemoved      = "تم إزالة المادة من المحفوظات"
	BookmarkLoginNeeded  = "يجب تسجيل الدخول لحفظ المواد"
	BookmarkCourseNeeded = "يجب تحديد المادة"
)

// User / auth messages.
const (
	UserIDRequired         = "معرف المستخدم مطلوب"
	UserNotFound           = "المستخدم غير موجود"
	SomeInformationMissing = "بعض المعلومات ناقصة"
	PermissionRemoved      = "تم إزالة الصلاحيات بنجاح"
	LoginRequired          = "يجب تسجيل الدخول"
	LoginInvalid           = "اسم المستخدم أو كلمة المرور غير صحيحة"
	LoginTooManyAttempts   = "محاولات كثيرة، حاول لاحقا"
	LoginAlreadyTaken      = "اسم المستخدم مستخدم مسبقا"
	RegisterFieldsMissing  = "جميع الحقول مطلوبة"
	NotAllowed             = "لا تملك الصلاحيات الكافية"
	ServerError            = "حدث خطأ في الخادم، حاول لاحقا"
)

// Tools messages.
const (
	NoPDFFiles        = "لم يتم رفع أي ملف PDF"
	OnlyPDFAllowed    = "مسموح فقط بملفات PDF"
	PDFMergeFailed    = "حدث خطأ أثناء معالجة ودمج الملفات"
	NoImageFiles      = "لم يتم رفع أي صورة"
	OnlyImagesAllowed = "مسموح فقط بملفات الصور"
	ImageToPDFFailed  = "حدث خطأ أثناء تحويل الصور"
)
